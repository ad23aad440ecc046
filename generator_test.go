package densitymesh

import (
	"errors"
	"testing"
	"time"
)

// checkMeshInvariants verifies that every triangle index is in range and
// every point is referenced by at least one triangle.
func checkMeshInvariants(t *testing.T, mesh *Mesh) {
	t.Helper()
	used := make([]bool, len(mesh.Points))
	for _, tri := range mesh.Triangles {
		for _, i := range [3]int{tri.A, tri.B, tri.C} {
			if i < 0 || i >= len(mesh.Points) {
				t.Fatalf("triangle index %d out of range [0, %d)", i, len(mesh.Points))
			}
			used[i] = true
		}
	}
	for i, ok := range used {
		if !ok {
			t.Fatalf("point %d not referenced by any triangle", i)
		}
	}
}

func denseSettings() Settings {
	return Settings{
		PointsSeparation: ConstantSeparation(0.5),
		MaxIterations:    32,
	}
}

func TestGeneratorSmallField(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, []byte{1, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(nil, field, denseSettings())
	mesh, err := gen.ProcessWait()
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(mesh.Points))
	}
	if len(mesh.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(mesh.Triangles))
	}
	checkMeshInvariants(t, mesh)
	if !gen.IsDone() {
		t.Fatal("generator must be done after ProcessWait")
	}
	if gen.Mesh() != mesh {
		t.Fatal("Mesh() must return the generated mesh")
	}
}

func TestGeneratorGradientField(t *testing.T) {
	data := make([]byte, 16*16)
	for i := range data {
		data[i] = byte(i)
	}
	field, err := NewDensityField(16, 16, 1, data)
	if err != nil {
		t.Fatal(err)
	}
	settings := DefaultSettings()
	settings.PointsSeparation = ConstantSeparation(3)
	settings.SteepnessThreshold = 0
	gen := NewGenerator(nil, field, settings)
	mesh, err := gen.ProcessWait()
	if err != nil {
		t.Fatal(err)
	}
	checkMeshInvariants(t, mesh)

	// Accepted points respect the separation constraint.
	for i := 0; i < len(mesh.Points); i++ {
		for j := i + 1; j < len(mesh.Points); j++ {
			if mesh.Points[i].Sub(mesh.Points[j]).SqrMagnitude() <= 9 {
				t.Fatalf("points %v and %v closer than the separation", mesh.Points[i], mesh.Points[j])
			}
		}
	}
}

func TestGeneratorSeparationControlsDensity(t *testing.T) {
	data := make([]byte, 16*16)
	for i := range data {
		data[i] = byte(i)
	}
	counts := make([]int, 0, 2)
	for _, sep := range []float64{2, 6} {
		field, err := NewDensityField(16, 16, 1, data)
		if err != nil {
			t.Fatal(err)
		}
		settings := DefaultSettings()
		settings.PointsSeparation = ConstantSeparation(sep)
		settings.SteepnessThreshold = 0
		mesh, err := NewGenerator(nil, field, settings).ProcessWait()
		if err != nil {
			t.Fatal(err)
		}
		counts = append(counts, len(mesh.Points))
	}
	if counts[0] <= counts[1] {
		t.Fatalf("smaller separation produced %d points, larger %d", counts[0], counts[1])
	}
}

func TestGeneratorExtrude(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, []byte{1, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	plain, err := NewGenerator(nil, field.Crop(0, 0, 2, 2), denseSettings()).ProcessWait()
	if err != nil {
		t.Fatal(err)
	}

	settings := denseSettings()
	settings.ExtrudeSize = 0.5
	extruded, err := NewGenerator(nil, field, settings).ProcessWait()
	if err != nil {
		t.Fatal(err)
	}
	if len(extruded.Points) <= len(plain.Points) {
		t.Fatalf("extrusion added no points: %d vs %d", len(extruded.Points), len(plain.Points))
	}
	if len(extruded.Triangles) <= len(plain.Triangles) {
		t.Fatalf("extrusion added no triangles: %d vs %d", len(extruded.Triangles), len(plain.Triangles))
	}
	checkMeshInvariants(t, extruded)
}

func TestGeneratorChunkBorders(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = 255
	}
	field, err := NewDensityField(4, 4, 1, data)
	if err != nil {
		t.Fatal(err)
	}
	settings := DefaultSettings()
	settings.PointsSeparation = ConstantSeparation(1)
	settings.IsChunk = true
	settings.KeepInvisibleTriangles = true
	mesh, err := NewGenerator(nil, field, settings).ProcessWait()
	if err != nil {
		t.Fatal(err)
	}
	checkMeshInvariants(t, mesh)
	for _, corner := range []Vector2{Vec2(0, 0), Vec2(3, 0), Vec2(3, 3), Vec2(0, 3)} {
		found := false
		for _, p := range mesh.Points {
			if p == corner {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("corner %v missing from chunk mesh", corner)
		}
	}
}

func TestGeneratorFailsOnEmptyField(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, make([]byte, 4))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewGenerator(nil, field, DefaultSettings()).ProcessWait()
	if !errors.Is(err, ErrFailedTriangulation) {
		t.Fatalf("got %v, want ErrFailedTriangulation", err)
	}
}

func TestGeneratorZeroValue(t *testing.T) {
	var gen Generator
	if _, err := gen.Process(); !errors.Is(err, ErrUninitializedGenerator) {
		t.Fatalf("got %v, want ErrUninitializedGenerator", err)
	}
}

func TestGeneratorAlreadyCompleted(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, []byte{1, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(nil, field, denseSettings())
	if _, err := gen.ProcessWait(); err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Process(); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("got %v, want ErrAlreadyCompleted", err)
	}
}

func TestGeneratorProgressTracking(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, []byte{1, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(nil, field, denseSettings())

	calls := 0
	last := -1.0
	mesh, err := gen.ProcessWaitTracked(func(current, limit int, fraction float64) {
		calls++
		if fraction < last {
			t.Fatalf("progress went backwards: %v after %v", fraction, last)
		}
		if current > limit {
			t.Fatalf("current %d beyond limit %d", current, limit)
		}
		last = fraction
	})
	if err != nil {
		t.Fatal(err)
	}
	if mesh == nil {
		t.Fatal("expected a mesh")
	}
	if calls < 2 {
		t.Fatalf("progress callback invoked %d times, want at least 2", calls)
	}
	if last != 1 {
		t.Fatalf("final progress fraction = %v, want 1", last)
	}
}

func TestGeneratorProcessWaitTimeout(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, []byte{1, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(nil, field, denseSettings())

	// A zero budget still performs one step.
	status, err := gen.ProcessWaitTimeout(0)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusInProgress {
		t.Fatalf("got %v after one step, want in progress", status)
	}

	for status == StatusInProgress {
		status, err = gen.ProcessWaitTimeout(time.Second)
		if err != nil {
			t.Fatal(err)
		}
	}
	if status != StatusMeshChanged {
		t.Fatalf("got %v, want mesh changed", status)
	}
	checkMeshInvariants(t, gen.Mesh())
}

func TestGeneratorTimeoutTracked(t *testing.T) {
	field, err := NewDensityField(2, 2, 1, []byte{1, 2, 3, 1})
	if err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(nil, field, denseSettings())
	calls := 0
	status := StatusInProgress
	for status == StatusInProgress {
		status, err = gen.ProcessWaitTimeoutTracked(func(current, limit int, fraction float64) {
			calls++
		}, time.Second)
		if err != nil {
			t.Fatal(err)
		}
	}
	if status != StatusMeshChanged {
		t.Fatalf("got %v, want mesh changed", status)
	}
	if calls == 0 {
		t.Fatal("progress callback never invoked")
	}
}
