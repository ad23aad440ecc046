package densitymesh

// isTriangleVisible samples every integer grid point inside the triangle
// and reports whether more than half of them are above the visibility
// threshold. Membership is tested against the right-perpendicular normal of
// each directed edge, so it assumes the winding produced by triangulate.
func isTriangleVisible(a, b, c Vector2, field *DensityField, settings Settings) bool {
	fx := Min(int(a.X), int(b.X), int(c.X))
	fy := Min(int(a.Y), int(b.Y), int(c.Y))
	tx := Max(int(a.X), int(b.X), int(c.X))
	ty := Max(int(a.Y), int(b.Y), int(c.Y))
	nab := b.Sub(a).Right()
	nbc := c.Sub(b).Right()
	nca := a.Sub(c).Right()
	count := 0
	samples := 0
	for y := fy; y <= ty; y++ {
		for x := fx; x <= tx; x++ {
			p := Vec2(float64(x), float64(y))
			if p.Sub(a).Dot(nab) >= 0 && p.Sub(b).Dot(nbc) >= 0 && p.Sub(c).Dot(nca) >= 0 {
				samples++
				if field.ValueAt(x, y) > settings.VisibilityThreshold {
					count++
				}
			}
		}
	}
	if samples == 0 {
		return false
	}
	return float64(count)/float64(samples) > 0.5
}
