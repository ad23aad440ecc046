package densitymesh

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ExportJSON writes the mesh as JSON, optionally indented. The encoding
// round-trips losslessly through json.Unmarshal into a Mesh.
func ExportJSON(w io.Writer, mesh *Mesh, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(mesh)
}

// ExportYAML writes the mesh as YAML with the same field names as the JSON
// encoding.
func ExportYAML(w io.Writer, mesh *Mesh) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(mesh); err != nil {
		return err
	}
	return enc.Close()
}

// ExportOBJ writes the mesh as a Wavefront OBJ object on the z=0 plane.
// OBJ face indices are 1-based.
func ExportOBJ(w io.Writer, mesh *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "o mesh")
	for _, p := range mesh.Points {
		fmt.Fprintf(bw, "v %g %g 0\n", p.X, p.Y)
	}
	for _, t := range mesh.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", t.A+1, t.B+1, t.C+1)
	}
	return bw.Flush()
}
