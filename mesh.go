package densitymesh

// Triangle references three points of a companion point list.
type Triangle struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// Mesh is the generation output: a point cloud and the triangles over it.
// After baking every point is referenced by at least one triangle and every
// index is in range.
type Mesh struct {
	Points    []Vector2  `json:"points"`
	Triangles []Triangle `json:"triangles"`
}

// bakeMesh drops points with no triangle references and remaps triangle
// indices onto the compacted point list. Relative order of surviving points
// is preserved.
func bakeMesh(points []Vector2, triangles []Triangle) *Mesh {
	used := make([]bool, len(points))
	for _, t := range triangles {
		used[t.A] = true
		used[t.B] = true
		used[t.C] = true
	}
	mapping := make([]int, len(points))
	baked := make([]Vector2, 0, len(points))
	for i, p := range points {
		if used[i] {
			mapping[i] = len(baked)
			baked = append(baked, p)
		}
	}
	out := make([]Triangle, len(triangles))
	for i, t := range triangles {
		out[i] = Triangle{A: mapping[t.A], B: mapping[t.B], C: mapping[t.C]}
	}
	return &Mesh{Points: baked, Triangles: out}
}
