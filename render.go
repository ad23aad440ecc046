package densitymesh

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Wireframe drawing modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// RenderOptions controls mesh rasterization.
type RenderOptions struct {
	// Wireframe selects one of the wireframe modes above.
	Wireframe int
	// StrokeWidth is the wireframe line width.
	StrokeWidth float64
	// Fill is the triangle fill color when no background is given.
	Fill color.Color
	// Stroke is the wireframe color.
	Stroke color.Color
	// Background, when set, is drawn underneath and sampled at each
	// triangle's centroid for the fill color.
	Background image.Image
}

// DefaultRenderOptions returns sensible rasterization defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Wireframe:   WithWireframe,
		StrokeWidth: 1,
		Fill:        color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff},
		Stroke:      color.RGBA{A: 0xff},
	}
}

// RenderMesh rasterizes the mesh onto a white canvas of the given size.
func RenderMesh(mesh *Mesh, width, height int, opts RenderOptions) image.Image {
	ctx := gg.NewContext(width, height)
	ctx.SetRGBA(1, 1, 1, 1)
	ctx.Clear()
	if opts.Background != nil {
		ctx.DrawImage(opts.Background, 0, 0)
	}
	for _, t := range mesh.Triangles {
		p0 := mesh.Points[t.A]
		p1 := mesh.Points[t.B]
		p2 := mesh.Points[t.C]

		ctx.Push()
		ctx.MoveTo(p0.X, p0.Y)
		ctx.LineTo(p1.X, p1.Y)
		ctx.LineTo(p2.X, p2.Y)
		ctx.ClosePath()

		fill := opts.Fill
		if opts.Background != nil {
			cx := (p0.X + p1.X + p2.X) / 3
			cy := (p0.Y + p1.Y + p2.Y) / 3
			fill = opts.Background.At(int(cx), int(cy))
		}

		switch opts.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(opts.Stroke))
			ctx.SetLineWidth(opts.StrokeWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(opts.Stroke))
			ctx.SetLineWidth(opts.StrokeWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}
	return ctx.Image()
}
