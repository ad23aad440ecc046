package densitymesh

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// DensitySource selects which image information feeds the density buffer.
type DensitySource int

const (
	// SourceLumaAlpha uses luminance multiplied by alpha.
	SourceLumaAlpha DensitySource = iota
	// SourceLuma uses luminance only.
	SourceLuma
	// SourceRed uses the red channel.
	SourceRed
	// SourceGreen uses the green channel.
	SourceGreen
	// SourceBlue uses the blue channel.
	SourceBlue
	// SourceAlpha uses the alpha channel.
	SourceAlpha
)

// ParseDensitySource parses a density source name as used by the CLI.
func ParseDensitySource(s string) (DensitySource, error) {
	switch s {
	case "luma-alpha":
		return SourceLumaAlpha, nil
	case "luma":
		return SourceLuma, nil
	case "red":
		return SourceRed, nil
	case "green":
		return SourceGreen, nil
	case "blue":
		return SourceBlue, nil
	case "alpha":
		return SourceAlpha, nil
	}
	return 0, fmt.Errorf("densitymesh: unknown density source %q", s)
}

// ImageSettings controls density field extraction from an image.
type ImageSettings struct {
	// Source selects the channel mix that becomes density.
	Source DensitySource
	// Scale downsamples the image by the factor before sampling; the field
	// keeps it as its coordinate scale, so output coordinates still cover
	// the original image size.
	Scale int
}

// DefaultImageSettings returns the default image extraction settings.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{Source: SourceLumaAlpha, Scale: 1}
}

// FieldFromImage builds a density field from an image. With Scale > 1 the
// image is resampled down by the factor first.
func FieldFromImage(img image.Image, settings ImageSettings) (*DensityField, error) {
	scale := Max(settings.Scale, 1)
	if scale > 1 {
		w := Max(img.Bounds().Dx()/scale, 1)
		h := Max(img.Bounds().Dy()/scale, 1)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}
	src := toNRGBA(img)
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r, g, b, a := src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]
			switch settings.Source {
			case SourceLuma:
				data[y*w+x] = luminance(r, g, b)
			case SourceLumaAlpha:
				data[y*w+x] = uint8(float64(luminance(r, g, b)) * float64(a) / 255)
			case SourceRed:
				data[y*w+x] = r
			case SourceGreen:
				data[y*w+x] = g
			case SourceBlue:
				data[y*w+x] = b
			case SourceAlpha:
				data[y*w+x] = a
			}
		}
	}
	return NewDensityField(w, h, scale, data)
}

// FieldToImage renders the field's density, or its steepness, as a
// grayscale image at the unscaled resolution.
func FieldToImage(field *DensityField, steepness bool) *image.Gray {
	buffer := field.Values()
	if steepness {
		buffer = field.Steepness()
	}
	img := image.NewGray(image.Rect(0, 0, field.UnscaledWidth(), field.UnscaledHeight()))
	for i, v := range buffer {
		img.Pix[i] = uint8(Clamp(v, 0, 1) * 255)
	}
	return img
}

// luminance converts a pixel to its Rec. 601 luma.
func luminance(r, g, b uint8) uint8 {
	return uint8(float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114)
}

// toNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
