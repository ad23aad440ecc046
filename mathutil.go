package densitymesh

import "golang.org/x/exp/constraints"

// Min returns the smallest of the given values.
func Min[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest of the given values.
func Max[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

// Clamp limits a value to the [min, max] range.
func Clamp[T constraints.Ordered](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp interpolates between from and to by a factor clamped to [0, 1].
func Lerp(factor, from, to float64) float64 {
	return from + (to-from)*Clamp(factor, 0, 1)
}
