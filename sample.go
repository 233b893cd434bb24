package ridgeline

import "fmt"

// A ProfileSet is an ordered sequence of elevation profiles. Profile 0 is
// sampled from the grid's last (southernmost) row and is drawn frontmost;
// the ordering is the occlusion order.
type ProfileSet [][]float64

// SampleProfiles extracts numProfiles equally spaced rows from grid, each
// resampled to numPointsPerProfile columns by nearest-index selection. Rows
// are taken from the last row up to the first, so profile 0 corresponds to
// the grid's southern edge.
func SampleProfiles(grid Grid, numProfiles, numPointsPerProfile int) (ProfileSet, error) {
	height, width := grid.Height(), grid.Width()
	if height == 0 || width == 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrEmptyRaster, width, height)
	}
	if numProfiles < 1 {
		return nil, fmt.Errorf("%w: numProfiles %d, need at least 1", ErrInvalidParameter, numProfiles)
	}
	if numPointsPerProfile < 1 {
		return nil, fmt.Errorf("%w: numPointsPerProfile %d, need at least 1", ErrInvalidParameter, numPointsPerProfile)
	}

	rows := spacedIndices(height-1, 0, numProfiles)
	cols := spacedIndices(0, width-1, numPointsPerProfile)

	profiles := make(ProfileSet, numProfiles)
	for i, row := range rows {
		profile := make([]float64, numPointsPerProfile)
		for j, col := range cols {
			profile[j] = grid.Sample(row, col)
		}
		profiles[i] = profile
	}
	return profiles, nil
}

// spacedIndices returns n indices equally spaced over [from, to] inclusive,
// truncated to integers. from may be greater than to. The endpoints are
// pinned exactly; float rounding must not drop the far edge.
func spacedIndices(from, to, n int) []int {
	indices := make([]int, n)
	if n == 1 {
		indices[0] = from
		return indices
	}
	step := float64(to-from) / float64(n-1)
	for i := range indices {
		indices[i] = int(float64(from) + step*float64(i))
	}
	indices[0] = from
	indices[n-1] = to
	return indices
}
