package densitymesh

import "time"

// Status reports the outcome of a processing step.
type Status int

const (
	// StatusIdle means there is nothing left to process.
	StatusIdle Status = iota
	// StatusInProgress means more processing steps are pending.
	StatusInProgress
	// StatusMeshChanged means the mesh was updated during the last step.
	StatusMeshChanged
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInProgress:
		return "in progress"
	case StatusMeshChanged:
		return "mesh changed"
	}
	return "unknown"
}

// ProgressFunc receives generation progress after every processing step.
type ProgressFunc func(current, limit int, fraction float64)

// generatorState is one phase of mesh generation, carrying exactly the data
// needed to resume it. Stepping a state hands ownership of its buffers to
// the next state.
type generatorState interface {
	step(g *Generator) (generatorState, Status, error)
	progress() (current, limit int, fraction float64)
}

// Generator produces a density mesh in resumable steps, so callers can
// track progress or bound the work done per frame. The zero value is
// uninitialized and fails on Process.
type Generator struct {
	field *DensityField
	state generatorState
	mesh  *Mesh
}

// NewGenerator creates a generator over the field, seeded with the given
// initial points. The generator takes exclusive ownership of the field.
func NewGenerator(seeds []Vector2, field *DensityField, settings Settings) *Generator {
	points := make([]Vector2, 0, len(seeds))
	points = append(points, seeds...)
	if settings.IsChunk {
		points = append(points, chunkBorderPoints(field, settings)...)
	}
	remaining := collectCandidates(field, settings)
	return &Generator{
		field: field,
		state: &findingPoints{
			settings:  settings,
			tries:     settings.MaxIterations,
			remaining: remaining,
			points:    points,
			limit:     len(remaining),
		},
	}
}

// Field returns the generator's density field.
func (g *Generator) Field() *DensityField { return g.field }

// Mesh returns the generated mesh, or nil while processing is unfinished.
func (g *Generator) Mesh() *Mesh { return g.mesh }

// IsDone reports whether generation reached the terminal state.
func (g *Generator) IsDone() bool {
	_, ok := g.state.(*completedPhase)
	return ok
}

// Progress returns the candidates consumed so far, the total candidate
// count and the completed fraction.
func (g *Generator) Progress() (current, limit int, fraction float64) {
	if g.state == nil {
		return 0, 0, 0
	}
	return g.state.progress()
}

// Process executes exactly one phase step. It returns StatusInProgress
// while work remains and StatusMeshChanged on the transition into the
// terminal state. Processing a zero-value generator fails with
// ErrUninitializedGenerator; processing a finished one with
// ErrAlreadyCompleted.
func (g *Generator) Process() (Status, error) {
	if g.state == nil {
		return StatusIdle, ErrUninitializedGenerator
	}
	next, status, err := g.state.step(g)
	if err != nil {
		return StatusIdle, err
	}
	g.state = next
	return status, nil
}

// ProcessWait processes steps until the mesh is complete.
func (g *Generator) ProcessWait() (*Mesh, error) {
	for {
		status, err := g.Process()
		if err != nil {
			return nil, err
		}
		if status != StatusInProgress {
			return g.mesh, nil
		}
	}
}

// ProcessWaitTracked processes steps until the mesh is complete, invoking
// fn with the current progress before the first step and after every step.
func (g *Generator) ProcessWaitTracked(fn ProgressFunc) (*Mesh, error) {
	fn(g.Progress())
	for {
		status, err := g.Process()
		if err != nil {
			return nil, err
		}
		fn(g.Progress())
		if status != StatusInProgress {
			return g.mesh, nil
		}
	}
}

// ProcessWaitTimeout processes steps until the mesh is complete or the
// time budget runs out, and returns the status current at that moment.
// Preemption granularity is one phase step: a single triangulate, filter,
// extrude or bake call runs to completion and can overshoot the budget.
func (g *Generator) ProcessWaitTimeout(timeout time.Duration) (Status, error) {
	start := time.Now()
	for {
		status, err := g.Process()
		if err != nil {
			return status, err
		}
		if status != StatusInProgress || time.Since(start) > timeout {
			return status, nil
		}
	}
}

// ProcessWaitTimeoutTracked combines ProcessWaitTimeout with a progress
// callback invoked before the first step and after every step.
func (g *Generator) ProcessWaitTimeoutTracked(fn ProgressFunc, timeout time.Duration) (Status, error) {
	start := time.Now()
	fn(g.Progress())
	for {
		status, err := g.Process()
		if err != nil {
			return status, err
		}
		fn(g.Progress())
		if status != StatusInProgress || time.Since(start) > timeout {
			return status, nil
		}
	}
}

// findingPoints greedily accepts the steepest candidate that respects the
// separation constraints, one candidate per step.
type findingPoints struct {
	settings  Settings
	tries     int
	remaining []candidate
	points    []Vector2
	limit     int
}

func (s *findingPoints) step(g *Generator) (generatorState, Status, error) {
	if len(s.points) > 0 {
		s.remaining = filterCandidates(s.remaining, s.points)
		if len(s.remaining) == 0 {
			return s.next(), StatusInProgress, nil
		}
	}
	if point, ok := pickSteepest(s.remaining); ok {
		s.points = append(s.points, point)
		s.tries = Max(s.settings.MaxIterations, 1)
	} else if s.tries > 0 {
		s.tries--
	} else {
		return s.next(), StatusInProgress, nil
	}
	return s, StatusInProgress, nil
}

func (s *findingPoints) next() generatorState {
	return &triangulatePhase{settings: s.settings, points: s.points, limit: s.limit}
}

func (s *findingPoints) progress() (int, int, float64) {
	current := s.limit - len(s.remaining)
	if s.limit == 0 {
		return 0, 0, 0
	}
	return current, s.limit, float64(current) / float64(s.limit)
}

type triangulatePhase struct {
	settings Settings
	points   []Vector2
	limit    int
}

func (s *triangulatePhase) step(g *Generator) (generatorState, Status, error) {
	triangles, err := triangulate(s.points)
	if err != nil {
		return nil, StatusIdle, err
	}
	if !s.settings.KeepInvisibleTriangles {
		return &removeInvisiblePhase{
			settings:  s.settings,
			points:    s.points,
			triangles: triangles,
			limit:     s.limit,
		}, StatusInProgress, nil
	}
	return afterFiltering(s.settings, s.points, triangles, s.limit), StatusInProgress, nil
}

func (s *triangulatePhase) progress() (int, int, float64) {
	return s.limit, s.limit, 1
}

type removeInvisiblePhase struct {
	settings  Settings
	points    []Vector2
	triangles []Triangle
	limit     int
}

func (s *removeInvisiblePhase) step(g *Generator) (generatorState, Status, error) {
	visible := s.triangles[:0]
	for _, t := range s.triangles {
		if isTriangleVisible(s.points[t.A], s.points[t.B], s.points[t.C], g.field, s.settings) {
			visible = append(visible, t)
		}
	}
	return afterFiltering(s.settings, s.points, visible, s.limit), StatusInProgress, nil
}

func (s *removeInvisiblePhase) progress() (int, int, float64) {
	return s.limit, s.limit, 1
}

// afterFiltering picks the phase following triangle filtering: extrusion
// when a skirt is requested, otherwise baking.
func afterFiltering(settings Settings, points []Vector2, triangles []Triangle, limit int) generatorState {
	if settings.ExtrudeSize > 0 {
		return &extrudePhase{points: points, triangles: triangles, size: settings.ExtrudeSize, limit: limit}
	}
	return &bakePhase{points: points, triangles: triangles, limit: limit}
}

type extrudePhase struct {
	points    []Vector2
	triangles []Triangle
	size      float64
	limit     int
}

func (s *extrudePhase) step(g *Generator) (generatorState, Status, error) {
	offsets, skirts := extrude(s.points, s.triangles, s.size)
	return &bakePhase{
		points:    append(s.points, offsets...),
		triangles: append(s.triangles, skirts...),
		limit:     s.limit,
	}, StatusInProgress, nil
}

func (s *extrudePhase) progress() (int, int, float64) {
	return s.limit, s.limit, 1
}

type bakePhase struct {
	points    []Vector2
	triangles []Triangle
	limit     int
}

func (s *bakePhase) step(g *Generator) (generatorState, Status, error) {
	g.mesh = bakeMesh(s.points, s.triangles)
	return &completedPhase{limit: s.limit}, StatusMeshChanged, nil
}

func (s *bakePhase) progress() (int, int, float64) {
	return s.limit, s.limit, 1
}

type completedPhase struct {
	limit int
}

func (s *completedPhase) step(g *Generator) (generatorState, Status, error) {
	return nil, StatusIdle, ErrAlreadyCompleted
}

func (s *completedPhase) progress() (int, int, float64) {
	return s.limit, s.limit, 1
}
