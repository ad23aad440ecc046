package densitymesh

import "math"

// stitchEpsilon absorbs the float error of translating outline seed points
// into crop space and back when matching them against outline records.
const stitchEpsilon = 1e-6

type boundingBox struct {
	min Vector2
	max Vector2
}

func (b boundingBox) overlaps(o boundingBox) bool {
	return b.max.X > o.min.X && b.max.Y > o.min.Y && b.min.X < o.max.X && b.min.Y < o.max.Y
}

// cellRect converts the box to a non-negative cell rectangle.
func (b boundingBox) cellRect() (col, row, width, height int) {
	fx := int(math.Max(b.min.X, 0))
	fy := int(math.Max(b.min.Y, 0))
	tx := int(math.Max(b.max.X, 0))
	ty := int(math.Max(b.max.Y, 0))
	return fx, fy, tx - fx, ty - fy
}

func triangleBBox(t Triangle, points []Vector2) boundingBox {
	a, b, c := points[t.A], points[t.B], points[t.C]
	return boundingBox{
		min: Vec2(Min(a.X, b.X, c.X), Min(a.Y, b.Y, c.Y)),
		max: Vec2(Max(a.X, b.X, c.X), Max(a.Y, b.Y, c.Y)),
	}
}

// outlineRecord is one edge of the removed region's outline: its world-space
// endpoints, and the half-plane through the edge with the right-perpendicular
// of the edge direction as normal.
type outlineRecord struct {
	from   Vector2
	to     Vector2
	origin Vector2
	normal Vector2
}

type regionRequest struct {
	bbox     boundingBox
	settings Settings
}

// regionChange is a single in-flight regional regeneration.
type regionChange struct {
	bbox      boundingBox
	outline   []outlineRecord
	generator *Generator
}

// LiveMesh keeps a density mesh in sync with regional density changes
// without recomputing the whole field: each change re-runs generation over
// a cropped sub-problem and stitches the result into the accumulated mesh.
// Best for interactive applications.
type LiveMesh struct {
	field   *DensityField
	mesh    *Mesh
	queue   []regionRequest
	current *regionChange
}

// NewLiveMesh creates a live mesh over the field. The initial full-field
// generation is queued; call Process or ProcessWait to run it. The live
// mesh takes exclusive ownership of the field.
func NewLiveMesh(field *DensityField, settings Settings) *LiveMesh {
	full := boundingBox{
		min: Vec2(0, 0),
		max: Vec2(float64(field.Width()), float64(field.Height())),
	}
	return &LiveMesh{
		field: field,
		queue: []regionRequest{{bbox: full, settings: settings}},
	}
}

// Field returns the inner density field.
func (l *LiveMesh) Field() *DensityField { return l.field }

// Mesh returns the accumulated mesh, or nil before the first generation
// completes.
func (l *LiveMesh) Mesh() *Mesh { return l.mesh }

// InProgress reports whether changes are queued or in flight.
func (l *LiveMesh) InProgress() bool {
	return l.current != nil || len(l.queue) > 0
}

// ChangeMap patches a rectangle of the density field and queues the
// affected region for regeneration. The affected bounding box is the scaled
// patch rectangle expanded by the settings' ExtrudeSize on all sides; the
// queued settings carry no extrusion, the size acts as margin only.
func (l *LiveMesh) ChangeMap(col, row, width, height int, data []byte, settings Settings) error {
	if err := l.field.Apply(col, row, width, height, data); err != nil {
		return err
	}
	scale := float64(Max(l.field.Scale(), 1))
	extra := settings.ExtrudeSize
	settings.ExtrudeSize = 0
	l.queue = append(l.queue, regionRequest{
		bbox: boundingBox{
			min: Vec2(float64(col)*scale-extra, float64(row)*scale-extra),
			max: Vec2(float64(col+width)*scale+extra, float64(row+height)*scale+extra),
		},
		settings: settings,
	})
	return nil
}

// Process advances pending work by one step: either one step of the
// in-flight region's generator, or the setup of the next queued region.
// It returns StatusMeshChanged whenever the accumulated mesh was updated.
// Point lists of adjoining regions are concatenated as-is, so coincident
// seam points are preserved rather than deduplicated.
func (l *LiveMesh) Process() (Status, error) {
	if l.current == nil && len(l.queue) == 0 {
		return StatusIdle, nil
	}
	if l.current != nil {
		status, err := l.current.generator.Process()
		if err != nil {
			// A failed region is dropped; retrying the same input would
			// repeat the failure and block the queue behind it.
			l.current = nil
			return StatusIdle, err
		}
		if status == StatusMeshChanged {
			current := l.current
			l.current = nil
			sub := current.generator.Mesh()
			for i := range sub.Points {
				sub.Points[i] = sub.Points[i].Add(current.bbox.min)
			}
			if l.mesh == nil {
				l.mesh = sub
			} else {
				l.stitch(sub, current.outline)
			}
			return StatusMeshChanged, nil
		}
		return StatusInProgress, nil
	}
	req := l.queue[0]
	l.queue = l.queue[1:]
	l.beginRegion(req)
	if l.InProgress() {
		return StatusInProgress, nil
	}
	return StatusIdle, nil
}

// ProcessWait processes until the mesh is updated or nothing is pending.
func (l *LiveMesh) ProcessWait() error {
	for {
		status, err := l.Process()
		if err != nil {
			return err
		}
		if status != StatusInProgress {
			return nil
		}
	}
}

// beginRegion partitions the accumulated mesh against the request's box,
// records the removed area's outline and starts a generator over the
// cropped field seeded with the outline points.
func (l *LiveMesh) beginRegion(req regionRequest) {
	col, row, width, height := req.bbox.cellRect()
	if l.mesh == nil {
		l.current = &regionChange{
			bbox:      req.bbox,
			generator: NewGenerator(nil, l.field.Crop(col, row, width, height), req.settings),
		}
		return
	}
	var removed, kept []Triangle
	for _, t := range l.mesh.Triangles {
		if triangleBBox(t, l.mesh.Points).overlaps(req.bbox) {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(removed) == 0 {
		return
	}
	var outline []outlineRecord
	var seeds []Vector2
	for _, e := range outlineEdges(removed) {
		from := l.mesh.Points[e.from]
		to := l.mesh.Points[e.to]
		outline = append(outline, outlineRecord{
			from:   from,
			to:     to,
			origin: from,
			normal: to.Sub(from).Normalized().Right(),
		})
		seeds = append(seeds, from.Sub(req.bbox.min))
	}
	l.mesh = bakeMesh(l.mesh.Points, kept)
	l.current = &regionChange{
		bbox:      req.bbox,
		outline:   outline,
		generator: NewGenerator(seeds, l.field.Crop(col, row, width, height), req.settings),
	}
}

// stitch splices a world-space sub-mesh into the accumulated mesh. New
// triangles that merely re-cover area on the kept side of an outline edge
// are discarded; the rest are appended with their indices offset.
func (l *LiveMesh) stitch(sub *Mesh, outline []outlineRecord) {
	filtered := sub.Triangles[:0]
	for _, t := range sub.Triangles {
		if keepStitched(t, sub.Points, outline) {
			filtered = append(filtered, t)
		}
	}
	baked := bakeMesh(sub.Points, filtered)
	offset := len(l.mesh.Points)
	l.mesh.Points = append(l.mesh.Points, baked.Points...)
	for _, t := range baked.Triangles {
		l.mesh.Triangles = append(l.mesh.Triangles, Triangle{
			A: t.A + offset,
			B: t.B + offset,
			C: t.C + offset,
		})
	}
}

// keepStitched classifies a new triangle against the outline of the
// replaced region. Triangles sharing a whole outline edge are dropped when
// their centroid lies on the kept side; triangles sharing single outline
// vertices are dropped when enough of those edges see the whole triangle on
// the kept side.
func keepStitched(t Triangle, points []Vector2, outline []outlineRecord) bool {
	pa, pb, pc := points[t.A], points[t.B], points[t.C]
	centroid := pa.Add(pb).Add(pc).Div(3)
	samples := 0
	count := 0
	for _, rec := range outline {
		switch sharedEndpoints(rec, pa, pb, pc) {
		case 1:
			samples++
			if pa.Sub(rec.origin).Dot(rec.normal) <= 0 &&
				pb.Sub(rec.origin).Dot(rec.normal) <= 0 &&
				pc.Sub(rec.origin).Dot(rec.normal) <= 0 {
				count++
			}
		case 2:
			if centroid.Sub(rec.origin).Dot(rec.normal) <= 0 {
				return false
			}
		}
	}
	return samples == 0 || count < samples/2
}

// sharedEndpoints counts how many endpoints of the outline edge coincide
// with a vertex of the triangle.
func sharedEndpoints(rec outlineRecord, pa, pb, pc Vector2) int {
	shared := 0
	if coincides(rec.from, pa) || coincides(rec.from, pb) || coincides(rec.from, pc) {
		shared++
	}
	if coincides(rec.to, pa) || coincides(rec.to, pb) || coincides(rec.to, pc) {
		shared++
	}
	return shared
}

func coincides(a, b Vector2) bool {
	return math.Abs(a.X-b.X) < stitchEpsilon && math.Abs(a.Y-b.Y) < stitchEpsilon
}
