package ridgeline

import (
	"fmt"
	"math"
)

// rangeEpsilon guards division by zero when all samples share one elevation.
const rangeEpsilon = 1e-10

// A Range is a global elevation range in meters, computed after clamping
// below-sea-level samples to zero.
type Range struct {
	Min float64
	Max float64
}

// NormalizedProfiles holds the output of NormalizeProfiles: per-profile draw
// heights in plot units, the clamped raw elevations they were derived from,
// and the global elevation range.
type NormalizedProfiles struct {
	DrawHeights [][]float64
	Elevations  [][]float64
	Range       Range
}

// NormalizeProfiles clamps negative elevations to sea level, applies the
// vertical exaggeration transform, and normalizes every sample to a draw
// height in [0, amplitudeScale*verticalOffset*10]. Below-sea-level terrain
// is flattened to zero for display; the clamped, unexaggerated elevations
// are returned alongside the draw heights for color mapping.
func NormalizeProfiles(profiles ProfileSet, verticalExaggeration, verticalOffset, amplitudeScale float64) (*NormalizedProfiles, error) {
	if verticalExaggeration < 1 {
		return nil, fmt.Errorf("%w: vertical exaggeration %g, must be >= 1", ErrInvalidParameter, verticalExaggeration)
	}

	elevations := make([][]float64, len(profiles))
	globalMin, globalMax := math.Inf(1), math.Inf(-1)
	for i, profile := range profiles {
		clamped := make([]float64, len(profile))
		for j, sample := range profile {
			if sample < 0 || math.IsNaN(sample) {
				sample = 0
			}
			clamped[j] = sample
			if sample < globalMin {
				globalMin = sample
			}
			if sample > globalMax {
				globalMax = sample
			}
		}
		elevations[i] = clamped
	}
	if math.IsInf(globalMin, 1) {
		globalMin, globalMax = 0, 0
	}

	exaggeratedMin := globalMin
	exaggeratedMax := globalMin + (globalMax-globalMin)*verticalExaggeration
	scale := amplitudeScale * verticalOffset * 10

	drawHeights := make([][]float64, len(elevations))
	for i, profile := range elevations {
		heights := make([]float64, len(profile))
		for j, sample := range profile {
			exaggerated := globalMin + (sample-globalMin)*verticalExaggeration
			normalized := (exaggerated - exaggeratedMin) / (exaggeratedMax - exaggeratedMin + rangeEpsilon)
			heights[j] = normalized * scale
		}
		drawHeights[i] = heights
	}

	return &NormalizedProfiles{
		DrawHeights: drawHeights,
		Elevations:  elevations,
		Range:       Range{Min: globalMin, Max: globalMax},
	}, nil
}
