package ridgeline

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// backgroundColor fills the canvas and the profile silhouettes. Filling each
// silhouette with the background color is what occludes the profiles behind
// it.
var backgroundColor = color.Black

// Render runs the full pipeline: sample profiles from grid, normalize them,
// and composite them back to front on a canvas whose dimensions follow from
// extent's aspect ratio. The same extent, grid and params always produce a
// pixel-identical image.
func Render(extent Extent, grid Grid, params Params) (image.Image, error) {
	params = params.withDefaults()
	if params.VerticalOffset < 0 || params.AmplitudeScale < 0 || params.BaseWidth < 0 || params.LineWidth < 0 {
		return nil, fmt.Errorf("%w: negative render parameter", ErrInvalidParameter)
	}

	profiles, err := SampleProfiles(grid, params.NumProfiles, params.NumPointsPerProfile)
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeProfiles(profiles, params.VerticalExaggeration, params.VerticalOffset, params.AmplitudeScale)
	if err != nil {
		return nil, err
	}

	aspectRatio := extent.AspectRatio()
	if !(aspectRatio > 0) || math.IsInf(aspectRatio, 0) {
		return nil, fmt.Errorf("%w: aspect ratio %g", ErrInvalidGeometry, aspectRatio)
	}
	width := params.BaseWidth
	height := max(int(math.Round(float64(width)/aspectRatio)), 1)

	dc := gg.NewContext(width, height)
	renderLayers(dc, normalized, params)
	return dc.Image(), nil
}

// renderLayers paints the profiles onto dc, farthest first. Plot space has x
// in [0, points), y up in [0, profiles*verticalOffset]; each profile i sits
// on the baseline y = i*verticalOffset.
func renderLayers(dc *gg.Context, normalized *NormalizedProfiles, params Params) {
	numProfiles := len(normalized.DrawHeights)
	scaleX := float64(dc.Width()) / float64(params.NumPointsPerProfile)
	scaleY := float64(dc.Height()) / (float64(numProfiles) * params.VerticalOffset)
	px := func(x float64) float64 { return x * scaleX }
	py := func(y float64) float64 { return float64(dc.Height()) - y*scaleY }

	dc.SetColor(backgroundColor)
	dc.Clear()
	dc.SetLineWidth(params.LineWidth)

	for i := numProfiles - 1; i >= 0; i-- {
		heights := normalized.DrawHeights[i]
		yOffset := float64(i) * params.VerticalOffset

		// Opaque silhouette: fill from the curve down to y=0.
		dc.MoveTo(px(0), py(heights[0]+yOffset))
		for j := 1; j < len(heights); j++ {
			dc.LineTo(px(float64(j)), py(heights[j]+yOffset))
		}
		dc.LineTo(px(float64(len(heights)-1)), py(0))
		dc.LineTo(px(0), py(0))
		dc.ClosePath()
		dc.SetColor(backgroundColor)
		dc.Fill()

		if params.UseColorGradient {
			for j := 0; j+1 < len(heights); j++ {
				dc.SetColor(ElevationColor(normalized.Elevations[i][j], normalized.Range))
				dc.DrawLine(
					px(float64(j)), py(heights[j]+yOffset),
					px(float64(j+1)), py(heights[j+1]+yOffset),
				)
				dc.Stroke()
			}
		} else {
			dc.MoveTo(px(0), py(heights[0]+yOffset))
			for j := 1; j < len(heights); j++ {
				dc.LineTo(px(float64(j)), py(heights[j]+yOffset))
			}
			dc.SetColor(color.White)
			dc.Stroke()
		}
	}
}
