/*
Package densitymesh converts a scalar density field, typically derived from
an image's luminance or alpha, into a 2D triangulated mesh that approximates
the solid regions: sparse where the field is flat, dense where it changes
rapidly.

The package provides a command line utility around the library. Check the
supported commands by typing:

	$ densitymesh --help

One-shot generation runs the whole pipeline:

	field, err := densitymesh.NewDensityField(width, height, 1, data)
	if err != nil {
		log.Fatal(err)
	}
	gen := densitymesh.NewGenerator(nil, field, densitymesh.DefaultSettings())
	mesh, err := gen.ProcessWait()

Frame-budgeted generation bounds the work done per tick:

	for {
		status, err := gen.ProcessWaitTimeout(4 * time.Millisecond)
		if err != nil || status != densitymesh.StatusInProgress {
			break
		}
		// render a frame, report gen.Progress(), ...
	}

Interactive applications keep a LiveMesh and patch field regions in place;
only the affected mesh area is regenerated and stitched back:

	live := densitymesh.NewLiveMesh(field, settings)
	live.ProcessWait()
	live.ChangeMap(col, row, w, h, patch, settings)
	live.ProcessWait()
*/
package densitymesh
