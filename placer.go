package densitymesh

import (
	"runtime"
	"sync"
)

// candidate is a cell eligible to host a mesh point, annotated with its
// local minimum separation squared.
type candidate struct {
	point     Vector2
	value     float64
	steepness float64
	sepSq     float64
}

// collectCandidates harvests every cell above both admission thresholds.
func collectCandidates(field *DensityField, settings Settings) []candidate {
	scale := Max(field.Scale(), 1)
	var out []candidate
	field.EachCell(func(col, row int, value, steepness float64) {
		if value > settings.VisibilityThreshold && steepness > settings.SteepnessThreshold {
			sep := settings.PointsSeparation.At(steepness)
			out = append(out, candidate{
				point:     Vec2(float64(col*scale), float64(row*scale)),
				value:     value,
				steepness: steepness,
				sepSq:     sep * sep,
			})
		}
	})
	return out
}

// chunkBorderPoints pre-seeds the corners and evenly spaced edge points so
// that fields cut into chunks triangulate with shared seams.
func chunkBorderPoints(field *DensityField, settings Settings) []Vector2 {
	w := field.UnscaledWidth()
	h := field.UnscaledHeight()
	hc := int(float64(w)/settings.PointsSeparation.Maximum()) + 1
	vc := int(float64(h)/settings.PointsSeparation.Maximum()) + 1
	points := []Vector2{
		Vec2(0, 0),
		Vec2(float64(w-1), 0),
		Vec2(float64(w-1), float64(h-1)),
		Vec2(0, float64(h-1)),
	}
	for i := 1; i < hc; i++ {
		v := float64(w) * float64(i) / float64(hc)
		points = append(points, Vec2(v, 0), Vec2(v, float64(h-1)))
	}
	for i := 1; i < vc; i++ {
		v := float64(h) * float64(i) / float64(vc)
		points = append(points, Vec2(0, v), Vec2(float64(w-1), v))
	}
	return points
}

// parallelFilterThreshold is the candidate count above which the rejection
// filter fans out over worker goroutines. Each candidate is tested
// independently against the immutable accepted set, so workers need no
// synchronization beyond the final join.
const parallelFilterThreshold = 2048

// filterCandidates drops every candidate whose squared distance to any
// accepted point is within its local separation. Relative order of the
// survivors is preserved. The input slice is reused.
func filterCandidates(remaining []candidate, accepted []Vector2) []candidate {
	if len(remaining) == 0 || len(accepted) == 0 {
		return remaining
	}
	if len(remaining) < parallelFilterThreshold {
		out := remaining[:0]
		for _, c := range remaining {
			if survives(c, accepted) {
				out = append(out, c)
			}
		}
		return out
	}
	keep := make([]bool, len(remaining))
	workers := runtime.NumCPU()
	chunk := (len(remaining) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(remaining); start += chunk {
		end := Min(start+chunk, len(remaining))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				keep[i] = survives(remaining[i], accepted)
			}
		}(start, end)
	}
	wg.Wait()
	out := remaining[:0]
	for i, c := range remaining {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func survives(c candidate, accepted []Vector2) bool {
	for _, p := range accepted {
		if p.Sub(c.point).SqrMagnitude() <= c.sepSq {
			return false
		}
	}
	return true
}

// pickSteepest returns the remaining candidate with maximum steepness.
func pickSteepest(remaining []candidate) (Vector2, bool) {
	if len(remaining) == 0 {
		return Vector2{}, false
	}
	best := 0
	for i := 1; i < len(remaining); i++ {
		if remaining[i].steepness > remaining[best].steepness {
			best = i
		}
	}
	return remaining[best].point, true
}
