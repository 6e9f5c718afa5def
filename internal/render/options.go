package render

// Options holds the fixed rendering configuration. These are deployment
// configuration, not user-exposed knobs: every export of a given deployment
// uses the same page geometry and raster fidelity.
type Options struct {
	// MarginMM is the page margin in millimetres.
	MarginMM float64

	// ImageQuality is the JPEG quality (0-1] applied when raster content
	// such as the branding logo is embedded.
	ImageQuality float64

	// Scale is the oversampling factor raster content should meet to keep
	// it crisp at print resolution.
	Scale float64

	// PageSize is the paper format, e.g. "A4".
	PageSize string

	// Orientation is "P" for portrait or "L" for landscape.
	Orientation string
}

// DefaultOptions returns the standard single-page portrait configuration.
func DefaultOptions() Options {
	return Options{
		MarginMM:     10,
		ImageQuality: 0.98,
		Scale:        2,
		PageSize:     "A4",
		Orientation:  "P",
	}
}
