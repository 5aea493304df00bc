// Command meshtext writes the glyph meshes of a text as Wavefront OBJ files.
//
// Usage:
//
//	meshtext --font Go-Regular.ttf --out meshes "Hello"
//
// Each distinct character becomes one file named after its code point,
// e.g. U+0048.obj.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/meshtext"
	"github.com/gogpu/meshtext/cache"
	"github.com/gogpu/meshtext/text"
)

type cli struct {
	Font       string `short:"f" required:"" type:"existingfile" env:"MESHTEXT_FONT" help:"Path to a TrueType or OpenType font"`
	Parser     string `short:"p" enum:"sfnt,gotext" default:"sfnt" env:"MESHTEXT_PARSER" help:"Font parser backend (${enum})"`
	Flat       bool   `help:"Emit flat glyph faces instead of extruded solids"`
	QuadSteps  uint32 `default:"5" env:"MESHTEXT_QUAD_STEPS" help:"Line segments per quadratic curve"`
	CubicSteps uint32 `default:"3" env:"MESHTEXT_CUBIC_STEPS" help:"Line segments per cubic curve"`
	Out        string `short:"o" type:"path" default:"." env:"MESHTEXT_OUT" help:"Output directory"`
	Jobs       int    `short:"j" default:"4" env:"MESHTEXT_JOBS" help:"Glyphs meshed in parallel"`
	Verbose    bool   `short:"v" help:"Log debug output to stderr"`

	Text string `arg:"" help:"Text to mesh"`
}

func main() {
	var args cli
	ctx := kong.Parse(&args,
		kong.Name("meshtext"),
		kong.Description("Generate 3D glyph meshes from a font."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run(context.Background(), &args, os.Stdout))
}

// glyphResult is the outcome of meshing one rune.
type glyphResult struct {
	r     rune
	path  string
	mesh  *meshtext.IndexedMesh
	empty bool
}

func run(ctx context.Context, args *cli, stdout io.Writer) error {
	if args.Verbose {
		meshtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	src, err := text.NewSourceFromFile(args.Font, text.WithParser(args.Parser))
	if err != nil {
		return err
	}
	gen, err := meshtext.NewMeshGenerator(src, meshtext.WithQuality(meshtext.QualitySettings{
		QuadSteps:  args.QuadSteps,
		CubicSteps: args.CubicSteps,
	}))
	if err != nil {
		return err
	}
	cached := meshtext.NewCachedGenerator(gen, cache.WithCapacity(1024))

	if err := os.MkdirAll(args.Out, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runes := distinctRunes(args.Text)
	results := make([]glyphResult, len(runes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(args.Jobs, 1))
	for i, r := range runes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := cached.GenerateIndexedMesh(r, args.Flat)
			if err != nil {
				return fmt.Errorf("%U %q: %w", r, r, err)
			}
			res := glyphResult{r: r, mesh: m, empty: m.IsEmpty()}
			if !res.empty {
				res.path = filepath.Join(args.Out, fmt.Sprintf("U+%04X.obj", r))
				if err := writeOBJFile(res.path, fmt.Sprintf("U+%04X", r), m); err != nil {
					return err
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if res.empty {
			fmt.Fprintf(stdout, "%U %q: no outline, skipped\n", res.r, res.r)
			continue
		}
		fmt.Fprintf(stdout, "%U %q: %d vertices, %d triangles -> %s\n",
			res.r, res.r, res.mesh.VertexCount(), res.mesh.TriangleCount(), res.path)
	}
	return nil
}

// distinctRunes returns the runes of s after NFC normalization, in order of
// first appearance, without control characters.
func distinctRunes(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range norm.NFC.String(s) {
		if seen[r] || unicode.IsControl(r) {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
