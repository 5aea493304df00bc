package meshtext

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/meshtext/cache"
	"github.com/gogpu/meshtext/text"
)

// meshKey identifies one generated mesh.
type meshKey struct {
	gid     text.GlyphID
	flat    bool
	quality QualitySettings
}

func hashMeshKey(k meshKey) uint64 {
	h := uint64(k.gid)<<1 ^ uint64(k.quality.QuadSteps)<<33 ^ uint64(k.quality.CubicSteps)<<48
	if k.flat {
		h |= 1
	}
	return cache.Uint64Hasher(h)
}

// CachedGenerator memoizes the meshes of a MeshGenerator.
//
// Concurrent requests for the same glyph share one computation. Failed
// generations are not cached. Cached meshes are shared between callers and
// must not be modified; use IndexedMesh.Transform to derive a copy.
//
// CachedGenerator is safe for concurrent use.
type CachedGenerator struct {
	gen   *MeshGenerator
	cache *cache.ShardedCache[meshKey, *IndexedMesh]
	group singleflight.Group
}

// NewCachedGenerator wraps gen with a mesh cache.
func NewCachedGenerator(gen *MeshGenerator, opts ...cache.Option) *CachedGenerator {
	return &CachedGenerator{
		gen:   gen,
		cache: cache.New[meshKey, *IndexedMesh](hashMeshKey, opts...),
	}
}

// Generator returns the wrapped generator.
func (c *CachedGenerator) Generator() *MeshGenerator {
	return c.gen
}

// GenerateIndexedMesh returns the cached mesh of the glyph mapped to r,
// generating it on first use.
func (c *CachedGenerator) GenerateIndexedMesh(r rune, flat bool) (*IndexedMesh, error) {
	return c.GenerateGlyph(c.gen.source.GlyphIndex(r), flat)
}

// GenerateGlyph returns the cached mesh of glyph gid, generating it on
// first use.
func (c *CachedGenerator) GenerateGlyph(gid text.GlyphID, flat bool) (*IndexedMesh, error) {
	key := meshKey{gid: gid, flat: flat, quality: c.gen.quality}
	if m, ok := c.cache.Get(key); ok {
		Logger().Debug("meshtext: mesh cache hit", "glyph", gid, "flat", flat)
		return m, nil
	}

	v, err, shared := c.group.Do(fmt.Sprintf("%d/%t", gid, flat), func() (any, error) {
		if m, ok := c.cache.Get(key); ok {
			return m, nil
		}
		m, err := c.gen.GenerateGlyph(gid, flat)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		Logger().Debug("meshtext: mesh generation shared", "glyph", gid, "flat", flat)
	}
	return v.(*IndexedMesh), nil
}

// GenerateMesh returns the non-indexed mesh of the glyph mapped to r.
// The result is a fresh expansion of the cached indexed mesh.
func (c *CachedGenerator) GenerateMesh(r rune, flat bool) (*Mesh, error) {
	m, err := c.GenerateIndexedMesh(r, flat)
	if err != nil {
		return nil, err
	}
	return m.Flatten(), nil
}

// Stats returns the statistics of the underlying cache.
func (c *CachedGenerator) Stats() cache.Stats {
	return c.cache.Stats()
}

// Clear drops all cached meshes.
func (c *CachedGenerator) Clear() {
	c.cache.Clear()
}
