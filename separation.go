package densitymesh

import (
	"fmt"
	"strconv"
	"strings"
)

// PointsSeparation is the minimum spacing between placed points. A constant
// separation uses the same spacing everywhere; a steepness mapping
// interpolates spacing from the local steepness, where steepness 0 maps to
// Max and steepness 1 maps to Min.
type PointsSeparation struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ConstantSeparation creates a fixed minimum spacing.
func ConstantSeparation(v float64) PointsSeparation {
	return PointsSeparation{Min: v, Max: v}
}

// SteepnessSeparation creates a spacing interpolated from local steepness.
func SteepnessSeparation(min, max float64) PointsSeparation {
	return PointsSeparation{Min: min, Max: max}
}

// Maximum returns the largest spacing the separation can produce.
func (s PointsSeparation) Maximum() float64 { return s.Max }

// At returns the spacing for a given steepness value. Steepness is clamped
// to [0, 1] before interpolation.
func (s PointsSeparation) At(steepness float64) float64 {
	if s.Min == s.Max {
		return s.Min
	}
	return Lerp(steepness, s.Max, s.Min)
}

func (s PointsSeparation) String() string {
	if s.Min == s.Max {
		return strconv.FormatFloat(s.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("%g..%g", s.Min, s.Max)
}

// ParsePointsSeparation parses either a single spacing value ("10") or a
// steepness-mapped range ("5..25").
func ParsePointsSeparation(s string) (PointsSeparation, error) {
	if i := strings.Index(s, ".."); i >= 0 {
		min, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return PointsSeparation{}, err
		}
		max, err := strconv.ParseFloat(s[i+2:], 64)
		if err != nil {
			return PointsSeparation{}, err
		}
		return SteepnessSeparation(min, max), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return PointsSeparation{}, err
	}
	return ConstantSeparation(v), nil
}
