package densitymesh

import (
	"errors"
	"testing"
)

func liveSettings() Settings {
	return Settings{
		PointsSeparation:       ConstantSeparation(0.5),
		VisibilityThreshold:    0.01,
		MaxIterations:          32,
		KeepInvisibleTriangles: true,
	}
}

func solidField(t *testing.T, width, height int) *DensityField {
	t.Helper()
	data := make([]byte, width*height)
	for i := range data {
		data[i] = 255
	}
	field, err := NewDensityField(width, height, 1, data)
	if err != nil {
		t.Fatal(err)
	}
	return field
}

func TestLiveMeshInitialGeneration(t *testing.T) {
	live := NewLiveMesh(solidField(t, 2, 4), liveSettings())
	if live.Mesh() != nil {
		t.Fatal("mesh must be nil before processing")
	}
	if !live.InProgress() {
		t.Fatal("initial generation must be queued")
	}
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	mesh := live.Mesh()
	if mesh == nil || len(mesh.Triangles) == 0 {
		t.Fatal("expected a non-empty mesh after initial generation")
	}
	checkMeshInvariants(t, mesh)
	if live.InProgress() {
		t.Fatal("no work must remain after ProcessWait")
	}
}

func TestLiveMeshIdle(t *testing.T) {
	live := NewLiveMesh(solidField(t, 2, 4), liveSettings())
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	status, err := live.Process()
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusIdle {
		t.Fatalf("got %v with nothing pending, want idle", status)
	}
}

func TestLiveMeshChangeMap(t *testing.T) {
	live := NewLiveMesh(solidField(t, 2, 4), liveSettings())
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}

	// Clear the bottom half of the field.
	if err := live.ChangeMap(0, 2, 2, 2, make([]byte, 4), liveSettings()); err != nil {
		t.Fatal(err)
	}
	if !live.InProgress() {
		t.Fatal("patched region must be queued")
	}
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 1, 1, 1, 0, 0, 0, 0}
	for i, v := range live.Field().Values() {
		if !closeTo(v, want[i], 1e-9) {
			t.Errorf("value[%d] = %v, want %v", i, v, want[i])
		}
	}
	if live.Mesh() == nil {
		t.Fatal("mesh must survive a regional change")
	}
	checkMeshInvariants(t, live.Mesh())
}

func TestLiveMeshChangeOutsideMesh(t *testing.T) {
	field := solidField(t, 8, 8)
	live := NewLiveMesh(field, liveSettings())
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	before := len(live.Mesh().Triangles)

	// Re-writing identical data still re-triangulates the touched region.
	patch := make([]byte, 4)
	for i := range patch {
		patch[i] = 255
	}
	if err := live.ChangeMap(3, 3, 2, 2, patch, liveSettings()); err != nil {
		t.Fatal(err)
	}
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	if live.Mesh() == nil || len(live.Mesh().Triangles) == 0 {
		t.Fatalf("mesh lost after identity patch, had %d triangles", before)
	}
	checkMeshInvariants(t, live.Mesh())
}

func TestLiveMeshTwoDisjointPatches(t *testing.T) {
	settings := Settings{
		PointsSeparation:    ConstantSeparation(1),
		VisibilityThreshold: 0.01,
		MaxIterations:       32,
	}
	live := NewLiveMesh(solidField(t, 4, 8), settings)
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}

	// Clear the top and bottom bands in sequence.
	if err := live.ChangeMap(0, 0, 4, 2, make([]byte, 8), settings); err != nil {
		t.Fatal(err)
	}
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	if err := live.ChangeMap(0, 6, 4, 2, make([]byte, 8), settings); err != nil {
		t.Fatal(err)
	}
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}

	for i, v := range live.Field().Values() {
		row := i / 4
		want := 1.0
		if row < 2 || row >= 6 {
			want = 0
		}
		if !closeTo(v, want, 1e-9) {
			t.Errorf("value[%d] = %v, want %v", i, v, want)
		}
	}

	mesh := live.Mesh()
	if mesh == nil {
		t.Fatal("mesh lost after patches")
	}
	checkMeshInvariants(t, mesh)

	// No triangle may cover the cleared bands.
	dead := []boundingBox{
		{min: Vec2(0, 0), max: Vec2(4, 2)},
		{min: Vec2(0, 6), max: Vec2(4, 8)},
	}
	for _, tri := range mesh.Triangles {
		box := triangleBBox(tri, mesh.Points)
		for _, d := range dead {
			if box.overlaps(d) {
				t.Fatalf("triangle %v overlaps cleared region %v..%v", tri, d.min, d.max)
			}
		}
	}
}

func TestLiveMeshRecoversAfterFailedRegion(t *testing.T) {
	// An all-empty field yields no candidates, so the initial generation
	// fails to triangulate.
	field, err := NewDensityField(2, 2, 1, make([]byte, 4))
	if err != nil {
		t.Fatal(err)
	}
	live := NewLiveMesh(field, liveSettings())

	var failure error
	for i := 0; i < 100 && failure == nil; i++ {
		_, failure = live.Process()
	}
	if !errors.Is(failure, ErrFailedTriangulation) {
		t.Fatalf("got %v, want ErrFailedTriangulation", failure)
	}

	// The failed region is dropped: the error surfaces once, then the
	// live mesh goes back to idle instead of replaying the failure.
	status, err := live.Process()
	if err != nil {
		t.Fatalf("process after failure: %v", err)
	}
	if status != StatusIdle {
		t.Fatalf("got %v after failure, want idle", status)
	}
	if live.InProgress() {
		t.Fatal("failed region must not stay in flight")
	}

	// Later changes still go through.
	solid := []byte{255, 255, 255, 255}
	if err := live.ChangeMap(0, 0, 2, 2, solid, liveSettings()); err != nil {
		t.Fatal(err)
	}
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	if live.Mesh() == nil || len(live.Mesh().Triangles) == 0 {
		t.Fatal("expected a mesh once the field has content")
	}
	checkMeshInvariants(t, live.Mesh())
}

func TestLiveMeshChangeMapErrors(t *testing.T) {
	live := NewLiveMesh(solidField(t, 4, 4), liveSettings())

	var wrong *WrongDataLengthError
	if err := live.ChangeMap(0, 0, 2, 2, []byte{1}, liveSettings()); !errors.As(err, &wrong) {
		t.Fatalf("expected WrongDataLengthError, got %v", err)
	}

	var oob *RegionOutOfBoundsError
	if err := live.ChangeMap(3, 3, 2, 2, make([]byte, 4), liveSettings()); !errors.As(err, &oob) {
		t.Fatalf("expected RegionOutOfBoundsError, got %v", err)
	}
	// Failed patches queue nothing.
	if err := live.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	if live.InProgress() {
		t.Fatal("failed patch must not queue work")
	}
}

func TestBoundingBoxOverlaps(t *testing.T) {
	a := boundingBox{min: Vec2(0, 0), max: Vec2(2, 2)}
	if !a.overlaps(boundingBox{min: Vec2(1, 1), max: Vec2(3, 3)}) {
		t.Fatal("intersecting boxes must overlap")
	}
	// Touching edges do not count as overlap.
	if a.overlaps(boundingBox{min: Vec2(2, 0), max: Vec2(4, 2)}) {
		t.Fatal("edge-touching boxes must not overlap")
	}
	if a.overlaps(boundingBox{min: Vec2(3, 3), max: Vec2(4, 4)}) {
		t.Fatal("disjoint boxes must not overlap")
	}
}
