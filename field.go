package densitymesh

import "math"

// DensityField holds density and steepness samples over a grid. Density is
// derived from raw bytes (0..255 mapped to [0, 1]); steepness is the local
// variation magnitude derived from the density at construction and kept in
// sync on partial patches. The scale factor upsamples output coordinates
// without growing the sample buffers.
type DensityField struct {
	width     int
	height    int
	scale     int
	data      []float64
	steepness []float64
}

// NewDensityField creates a field from a raw density byte buffer laid out
// row-major. It fails with WrongDataLengthError when the buffer does not
// cover width*height cells.
func NewDensityField(width, height, scale int, data []byte) (*DensityField, error) {
	if len(data) != width*height {
		return nil, &WrongDataLengthError{Provided: len(data), Expected: width * height}
	}
	f := &DensityField{
		width:     width,
		height:    height,
		scale:     scale,
		data:      make([]float64, len(data)),
		steepness: make([]float64, len(data)),
	}
	for i, v := range data {
		f.data[i] = float64(v) / 255
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			f.steepness[row*width+col] = f.cellSteepness(col, row)
		}
	}
	return f, nil
}

// Scale returns the coordinate scale factor.
func (f *DensityField) Scale() int { return f.scale }

// Width returns the scaled width.
func (f *DensityField) Width() int { return f.width * Max(f.scale, 1) }

// Height returns the scaled height.
func (f *DensityField) Height() int { return f.height * Max(f.scale, 1) }

// UnscaledWidth returns the grid resolution width.
func (f *DensityField) UnscaledWidth() int { return f.width }

// UnscaledHeight returns the grid resolution height.
func (f *DensityField) UnscaledHeight() int { return f.height }

// Values returns the density buffer.
func (f *DensityField) Values() []float64 { return f.data }

// Steepness returns the steepness buffer.
func (f *DensityField) Steepness() []float64 { return f.steepness }

// ValueAt returns the density at a point in scaled coordinates, or 0 when
// the point is out of range.
func (f *DensityField) ValueAt(x, y int) float64 {
	return f.sampleAt(f.data, x, y)
}

// SteepnessAt returns the steepness at a point in scaled coordinates, or 0
// when the point is out of range.
func (f *DensityField) SteepnessAt(x, y int) float64 {
	return f.sampleAt(f.steepness, x, y)
}

func (f *DensityField) sampleAt(buffer []float64, x, y int) float64 {
	scale := Max(f.scale, 1)
	col := x / scale
	row := y / scale
	if x < 0 || y < 0 || col >= f.width || row >= f.height {
		return 0
	}
	return buffer[row*f.width+col]
}

// EachCell calls fn for every cell in row-major order with the cell's
// column, row, density and steepness.
func (f *DensityField) EachCell(fn func(col, row int, value, steepness float64)) {
	for i, v := range f.data {
		fn(i%f.width, i/f.width, v, f.steepness[i])
	}
}

// Crop returns a new field restricted to the given cell rectangle, clamped
// to the field bounds. Scale is preserved.
func (f *DensityField) Crop(col, row, width, height int) *DensityField {
	fx := Clamp(col, 0, f.width)
	fy := Clamp(row, 0, f.height)
	tx := Clamp(col+width, fx, f.width)
	ty := Clamp(row+height, fy, f.height)
	w := tx - fx
	h := ty - fy
	out := &DensityField{
		width:     w,
		height:    h,
		scale:     f.scale,
		data:      make([]float64, w*h),
		steepness: make([]float64, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := (fy+y)*f.width + fx + x
			out.data[y*w+x] = f.data[src]
			out.steepness[y*w+x] = f.steepness[src]
		}
	}
	return out
}

// Apply overwrites the given cell rectangle with new raw density data. A
// rectangle covering the whole field rebuilds it; otherwise the patch is
// written in place and steepness is recomputed over the rectangle padded by
// one cell in each direction. Fails with WrongDataLengthError when the
// buffer does not cover the rectangle, or RegionOutOfBoundsError when the
// rectangle does not fit the field.
func (f *DensityField) Apply(col, row, width, height int, data []byte) error {
	if col == 0 && row == 0 && width == f.width && height == f.height {
		next, err := NewDensityField(width, height, f.scale, data)
		if err != nil {
			return err
		}
		*f = *next
		return nil
	}
	if len(data) != width*height {
		return &WrongDataLengthError{Provided: len(data), Expected: width * height}
	}
	if col < 0 || row < 0 || col+width > f.width || row+height > f.height {
		return &RegionOutOfBoundsError{Col: col, Row: row, Width: width, Height: height}
	}
	for i, v := range data {
		x := col + i%width
		y := row + i/width
		f.data[y*f.width+x] = float64(v) / 255
	}
	fx := Max(col-1, 0)
	fy := Max(row-1, 0)
	tx := Min(col+width+1, f.width)
	ty := Min(row+height+1, f.height)
	for y := fy; y < ty; y++ {
		for x := fx; x < tx; x++ {
			f.steepness[y*f.width+x] = f.cellSteepness(x, y)
		}
	}
	return nil
}

// cellSteepness sums, over the four 2x2 blocks overlapping the cell, the
// six pairwise absolute differences of the block corners, one twelfth each.
func (f *DensityField) cellSteepness(col, row int) float64 {
	result := 0.0
	for y := row - 1; y < row+1; y++ {
		for x := col - 1; x < col+1; x++ {
			a := f.rawValue(x, y)
			b := f.rawValue(x+1, y)
			c := f.rawValue(x+1, y+1)
			d := f.rawValue(x, y+1)
			result += (math.Abs(a-b) + math.Abs(c-d) + math.Abs(a-c) +
				math.Abs(b-d) + math.Abs(a-d) + math.Abs(b-c)) / 12
		}
	}
	return result
}

func (f *DensityField) rawValue(x, y int) float64 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.data[y*f.width+x]
}
