package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	dm "github.com/densitymesh/densitymesh"
	"github.com/densitymesh/densitymesh/utils"
)

var (
	// Flags
	source         = flag.String("in", "", "Source image")
	destination    = flag.String("out", "", "Destination file")
	mode           = flag.String("mode", "mesh", "Output mode: image | mesh")
	format         = flag.String("format", "", "Output format: json | json-pretty | yaml | obj | png (default from -out extension)")
	densitySource  = flag.String("source", "luma-alpha", "Density source: luma-alpha | luma | red | green | blue | alpha")
	scale          = flag.Int("scale", 1, "Image downscale factor")
	separation     = flag.String("separation", "10", "Points separation: constant \"10\" or steepness range \"5..25\"")
	visibility     = flag.Float64("visibility", 0.01, "Visibility threshold")
	steepness      = flag.Float64("steepness", 0.01, "Steepness threshold")
	maxIterations  = flag.Int("iterations", 32, "Stall limit of the point placement loop")
	extrude        = flag.Float64("extrude", 0, "Extrude size (0 disables extrusion)")
	chunk          = flag.Bool("chunk", false, "Pin points to the field border")
	keepInvisible  = flag.Bool("keep-invisible", false, "Keep triangles that fail the visibility test")
	steepnessImage = flag.Bool("steepness-image", false, "With -mode image, write the steepness map instead of density")
	wireframe      = flag.Int("wireframe", 1, "Wireframe mode with png output")
	lineWidth      = flag.Float64("width", 1, "Wireframe line width")
	verbose        = flag.Bool("verbose", false, "Show generation progress")
)

func main() {
	log.SetPrefix("densitymesh: ")
	log.SetFlags(0)
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: densitymesh -in input.png -out out.json")
	}

	sep, err := dm.ParsePointsSeparation(*separation)
	if err != nil {
		log.Fatalf("Invalid -separation: %v", err)
	}
	src, err := dm.ParseDensitySource(*densitySource)
	if err != nil {
		log.Fatalf("Invalid -source: %v", err)
	}

	field, err := loadField(*source, dm.ImageSettings{Source: src, Scale: *scale})
	if err != nil {
		log.Fatalf("Unable to build density field: %v", err)
	}

	out := outputFormat(*format, *destination)

	if *mode == "image" {
		img := dm.FieldToImage(field, *steepnessImage)
		if err := writePNG(*destination, img); err != nil {
			log.Fatalf("Unable to save image: %v", err)
		}
		fmt.Printf("Saved as: %s %s✓%s\n", path.Base(*destination), utils.SuccessColor, utils.DefaultColor)
		return
	}

	settings := dm.Settings{
		PointsSeparation:       sep,
		VisibilityThreshold:    *visibility,
		SteepnessThreshold:     *steepness,
		MaxIterations:          *maxIterations,
		ExtrudeSize:            *extrude,
		IsChunk:                *chunk,
		KeepInvisibleTriangles: *keepInvisible,
	}
	gen := dm.NewGenerator(nil, field, settings)

	start := time.Now()
	var mesh *dm.Mesh
	if *verbose {
		bar := utils.NewProgress()
		mesh, err = gen.ProcessWaitTracked(func(current, limit int, fraction float64) {
			bar.Update(current, limit, fraction)
		})
		bar.Done()
	} else {
		s := utils.NewSpinner()
		s.Start("Generating mesh...")
		mesh, err = gen.ProcessWait()
		s.Stop()
	}
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	if err := writeMesh(*destination, out, mesh, field); err != nil {
		log.Fatalf("Unable to save mesh: %v", err)
	}

	fmt.Printf("\nGenerated in: %s%s\n", utils.SuccessColor, utils.FormatTime(time.Since(start)))
	fmt.Printf("%sTotal number of %s%d %striangles generated out of %s%d %spoints\n",
		utils.DefaultColor, utils.SuccessColor, len(mesh.Triangles),
		utils.DefaultColor, utils.SuccessColor, len(mesh.Points), utils.DefaultColor)
	fmt.Printf("Saved as: %s %s✓%s\n", path.Base(*destination), utils.SuccessColor, utils.DefaultColor)
}

// loadField decodes the source image and extracts its density field.
func loadField(name string, settings dm.ImageSettings) (*dm.DensityField, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return dm.FieldFromImage(img, settings)
}

// outputFormat resolves the output format flag, falling back to the
// destination extension.
func outputFormat(format, destination string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(destination)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".obj":
		return "obj"
	case ".png":
		return "png"
	default:
		return "json"
	}
}

func writeMesh(name, format string, mesh *dm.Mesh, field *dm.DensityField) error {
	if format == "png" {
		opts := dm.DefaultRenderOptions()
		opts.Wireframe = *wireframe
		opts.StrokeWidth = *lineWidth
		img := dm.RenderMesh(mesh, field.Width(), field.Height(), opts)
		return writePNG(name, img)
	}

	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case "json":
		return dm.ExportJSON(file, mesh, false)
	case "json-pretty":
		return dm.ExportJSON(file, mesh, true)
	case "yaml":
		return dm.ExportYAML(file, mesh)
	case "obj":
		return dm.ExportOBJ(file, mesh)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writePNG(name string, img image.Image) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
