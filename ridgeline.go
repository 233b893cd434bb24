// Package ridgeline renders stacked terrain elevation profiles ("ridge
// plots") from gridded elevation data. The pipeline extracts equally spaced
// horizontal profiles from an elevation grid, normalizes and exaggerates
// them, and composites them back to front as opaque silhouettes so that
// nearer profiles occlude farther ones.
package ridgeline

import "errors"

var (
	ErrInvalidGeometry  = errors.New("invalid geometry")
	ErrEmptyRaster      = errors.New("empty raster")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrExport           = errors.New("export failed")
)

// Params configures a single render. The zero value of each numeric field
// selects its default.
type Params struct {
	// VerticalExaggeration scales elevation differences before
	// normalization. Must be >= 1.
	VerticalExaggeration float64
	// UseColorGradient selects elevation-colored profile lines instead of
	// solid white ones.
	UseColorGradient bool
	// VerticalOffset is the baseline spacing between adjacent profiles, in
	// plot units.
	VerticalOffset float64
	// AmplitudeScale controls peak height relative to profile spacing.
	AmplitudeScale float64
	// NumProfiles is the number of horizontal profiles sampled from the
	// grid.
	NumProfiles int
	// NumPointsPerProfile is the number of samples per profile.
	NumPointsPerProfile int
	// BaseWidth is the output image width in pixels. The height follows
	// from the extent's aspect ratio.
	BaseWidth int
	// LineWidth is the profile stroke width in pixels.
	LineWidth float64
}

// DefaultParams returns the default render parameters.
func DefaultParams() Params {
	return Params{
		VerticalExaggeration: 10,
		UseColorGradient:     true,
		VerticalOffset:       3,
		AmplitudeScale:       0.5,
		NumProfiles:          100,
		NumPointsPerProfile:  200,
		BaseWidth:            1600,
		LineWidth:            2,
	}
}

func (p Params) withDefaults() Params {
	defaults := DefaultParams()
	if p.VerticalExaggeration == 0 {
		p.VerticalExaggeration = defaults.VerticalExaggeration
	}
	if p.VerticalOffset == 0 {
		p.VerticalOffset = defaults.VerticalOffset
	}
	if p.AmplitudeScale == 0 {
		p.AmplitudeScale = defaults.AmplitudeScale
	}
	if p.NumProfiles == 0 {
		p.NumProfiles = defaults.NumProfiles
	}
	if p.NumPointsPerProfile == 0 {
		p.NumPointsPerProfile = defaults.NumPointsPerProfile
	}
	if p.BaseWidth == 0 {
		p.BaseWidth = defaults.BaseWidth
	}
	if p.LineWidth == 0 {
		p.LineWidth = defaults.LineWidth
	}
	return p
}
