package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gogpu/meshtext"
)

// writeOBJ writes m as a single Wavefront OBJ object.
// OBJ face indices are 1-based.
func writeOBJ(w io.Writer, name string, m *meshtext.IndexedMesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	fmt.Fprintf(bw, "o %s\n", name)

	buf := make([]byte, 0, 64)
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		buf = append(buf[:0], 'v')
		for _, c := range m.Vertices[i : i+3] {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, float64(c), 'g', -1, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		buf = append(buf[:0], 'f')
		for _, idx := range m.Indices[i : i+3] {
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, uint64(idx)+1, 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeOBJFile(path, name string, m *meshtext.IndexedMesh) (err error) {
	// #nosec G304 -- output path is built from the user's output directory
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeOBJ(f, name, m)
}
