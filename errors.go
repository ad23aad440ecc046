package densitymesh

import (
	"errors"
	"fmt"
)

var (
	// ErrFailedTriangulation signals a degenerate point set (fewer than
	// three effective points, or all collinear). Retrying with the same
	// input repeats the failure, so no retry is performed internally.
	ErrFailedTriangulation = errors.New("densitymesh: failed triangulation")

	// ErrUninitializedGenerator signals Process on a zero-value Generator.
	ErrUninitializedGenerator = errors.New("densitymesh: uninitialized generator")

	// ErrAlreadyCompleted signals Process on a completed Generator.
	ErrAlreadyCompleted = errors.New("densitymesh: generator already completed")
)

// WrongDataLengthError reports a density buffer whose length does not match
// the rectangle it should fill.
type WrongDataLengthError struct {
	Provided int
	Expected int
}

func (e *WrongDataLengthError) Error() string {
	return fmt.Sprintf("densitymesh: wrong data length: provided %d, expected %d", e.Provided, e.Expected)
}

// RegionOutOfBoundsError reports a patch rectangle that does not fit inside
// the density field.
type RegionOutOfBoundsError struct {
	Col, Row      int
	Width, Height int
}

func (e *RegionOutOfBoundsError) Error() string {
	return fmt.Sprintf("densitymesh: region %dx%d at (%d,%d) out of field bounds", e.Width, e.Height, e.Col, e.Row)
}
