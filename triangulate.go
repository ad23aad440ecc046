package densitymesh

import (
	"fmt"

	"github.com/fogleman/delaunay"
)

// triangulate runs the external Delaunay triangulator over a point set and
// normalizes triangle winding so that the interior of every triangle lies
// on the right-perpendicular side of each directed edge. The visibility
// filter and the extruder rely on that orientation.
func triangulate(points []Vector2) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, ErrFailedTriangulation
	}
	dpoints := make([]delaunay.Point, len(points))
	for i, p := range points {
		dpoints[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	triangulation, err := delaunay.Triangulate(dpoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedTriangulation, err)
	}
	indices := triangulation.Triangles
	if len(indices) == 0 {
		return nil, ErrFailedTriangulation
	}
	triangles := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		t := Triangle{A: indices[i], B: indices[i+1], C: indices[i+2]}
		a, b, c := points[t.A], points[t.B], points[t.C]
		ab := b.Sub(a)
		ac := c.Sub(a)
		if ab.X*ac.Y-ab.Y*ac.X > 0 {
			t.B, t.C = t.C, t.B
		}
		triangles = append(triangles, t)
	}
	return triangles, nil
}
