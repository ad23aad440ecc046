package densitymesh

// Settings controls density mesh generation.
type Settings struct {
	// PointsSeparation is the minimum spacing between placed points.
	PointsSeparation PointsSeparation `json:"pointsSeparation"`
	// VisibilityThreshold is the density above which a cell counts as solid.
	VisibilityThreshold float64 `json:"visibilityThreshold"`
	// SteepnessThreshold is the steepness above which a cell can host a point.
	SteepnessThreshold float64 `json:"steepnessThreshold"`
	// MaxIterations is the number of consecutive failed placement attempts
	// tolerated before point finding gives up.
	MaxIterations int `json:"maxIterations"`
	// ExtrudeSize is the skirt width added around the mesh outline.
	// Zero disables extrusion.
	ExtrudeSize float64 `json:"extrudeSize"`
	// IsChunk pre-seeds border points so neighbouring chunks share seams.
	IsChunk bool `json:"isChunk"`
	// KeepInvisibleTriangles skips the visibility filter.
	KeepInvisibleTriangles bool `json:"keepInvisibleTriangles"`
}

// DefaultSettings returns the default generation settings.
func DefaultSettings() Settings {
	return Settings{
		PointsSeparation:    ConstantSeparation(10),
		VisibilityThreshold: 0.01,
		SteepnessThreshold:  0.01,
		MaxIterations:       32,
	}
}
