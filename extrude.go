package densitymesh

// dirEdge is a directed triangle edge with the index of its owning triangle.
type dirEdge struct {
	owner int
	from  int
	to    int
}

// outlineEdges returns the directed edges that no other triangle shares in
// either direction. Outline order follows triangle order.
func outlineEdges(triangles []Triangle) []dirEdge {
	edges := make([]dirEdge, 0, len(triangles)*3)
	counts := make(map[[2]int]int, len(triangles)*3)
	for i, t := range triangles {
		for _, e := range [3]dirEdge{
			{owner: i, from: t.A, to: t.B},
			{owner: i, from: t.B, to: t.C},
			{owner: i, from: t.C, to: t.A},
		} {
			edges = append(edges, e)
			counts[undirected(e.from, e.to)]++
		}
	}
	outline := edges[:0]
	for _, e := range edges {
		if counts[undirected(e.from, e.to)] == 1 {
			outline = append(outline, e)
		}
	}
	return outline
}

func undirected(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// extrude builds a skirt around the mesh outline: every outline vertex gets
// a miter offset point at the given distance, and every outline edge emits
// two triangles connecting it to the offset edge, keeping the outward
// winding. Returned points and triangles are meant to be appended to the
// input mesh; skirt indices already account for the input point count.
func extrude(points []Vector2, triangles []Triangle, size float64) ([]Vector2, []Triangle) {
	outline := outlineEdges(triangles)
	incoming := make(map[int]int, len(outline))
	for _, e := range outline {
		incoming[e.to] = e.from
	}
	offsetIndex := make(map[int]int, len(outline))
	offsets := make([]Vector2, 0, len(outline))
	for _, e := range outline {
		m := points[e.from]
		n := points[e.to]
		mn := n.Sub(m).Normalized().Right().Neg()
		dir := mn
		if p, ok := incoming[e.from]; ok {
			pm := m.Sub(points[p]).Normalized().Right().Neg()
			dir = pm.Add(mn)
		}
		offsetIndex[e.from] = len(offsets)
		offsets = append(offsets, m.Add(dir.Normalized().Mul(size)))
	}
	skirts := make([]Triangle, 0, len(outline)*2)
	for _, e := range outline {
		ea := offsetIndex[e.from] + len(points)
		eb := offsetIndex[e.to] + len(points)
		skirts = append(skirts,
			Triangle{A: e.to, B: e.from, C: ea},
			Triangle{A: ea, B: eb, C: e.to},
		)
	}
	return offsets, skirts
}
