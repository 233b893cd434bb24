package ridgeline_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	ridgeline "github.com/tjbutt92/map-elevation-desire"
)

func TestSampleProfiles(t *testing.T) {
	grid := ridgeline.NewMemGrid([][]float64{
		{10, 11, 12, 13},
		{20, 21, 22, 23},
		{30, 31, 32, 33},
	})

	for _, tc := range []struct {
		name        string
		grid        ridgeline.Grid
		numProfiles int
		numPoints   int
		expected    ridgeline.ProfileSet
		expectedErr error
	}{
		{
			name:        "single_profile_is_last_row",
			grid:        grid,
			numProfiles: 1,
			numPoints:   4,
			expected:    ridgeline.ProfileSet{{30, 31, 32, 33}},
		},
		{
			name:        "full_grid_reversed_rows",
			grid:        grid,
			numProfiles: 3,
			numPoints:   4,
			expected: ridgeline.ProfileSet{
				{30, 31, 32, 33},
				{20, 21, 22, 23},
				{10, 11, 12, 13},
			},
		},
		{
			name:        "column_downsampling_nearest_index",
			grid:        grid,
			numProfiles: 1,
			numPoints:   2,
			expected:    ridgeline.ProfileSet{{30, 33}},
		},
		{
			name:        "single_point_per_profile",
			grid:        grid,
			numProfiles: 2,
			numPoints:   1,
			expected:    ridgeline.ProfileSet{{30}, {10}},
		},
		{
			name:        "upsampling_repeats_columns",
			grid:        ridgeline.NewMemGrid([][]float64{{1, 2}}),
			numProfiles: 1,
			numPoints:   3,
			expected:    ridgeline.ProfileSet{{1, 1, 2}},
		},
		{
			name:        "empty_grid",
			grid:        ridgeline.NewMemGrid(nil),
			numProfiles: 1,
			numPoints:   1,
			expectedErr: ridgeline.ErrEmptyRaster,
		},
		{
			name:        "zero_width_grid",
			grid:        ridgeline.NewMemGrid([][]float64{{}}),
			numProfiles: 1,
			numPoints:   1,
			expectedErr: ridgeline.ErrEmptyRaster,
		},
		{
			name:        "zero_profiles",
			grid:        grid,
			numProfiles: 0,
			numPoints:   4,
			expectedErr: ridgeline.ErrInvalidParameter,
		},
		{
			name:        "zero_points",
			grid:        grid,
			numProfiles: 1,
			numPoints:   0,
			expectedErr: ridgeline.ErrInvalidParameter,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ridgeline.SampleProfiles(tc.grid, tc.numProfiles, tc.numPoints)
			if tc.expectedErr != nil {
				assert.IsError(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, actual)
			}
		})
	}
}

func TestSampleProfilesSpansBothEdges(t *testing.T) {
	// The sampled indices must span [0, W-1] and [0, H-1] inclusive for any
	// profile and point count; accumulated float steps such as 49*(1/49)
	// round just below the far edge and would otherwise truncate it away.
	grid := ridgeline.NewMemGrid([][]float64{
		{1, 2},
		{3, 4},
	})
	for _, numPoints := range []int{2, 3, 7, 50} {
		profiles, err := ridgeline.SampleProfiles(grid, 2, numPoints)
		assert.NoError(t, err)
		assert.Equal(t, 3.0, profiles[0][0])
		assert.Equal(t, 4.0, profiles[0][numPoints-1])
	}
	for _, numProfiles := range []int{2, 3, 7, 50} {
		profiles, err := ridgeline.SampleProfiles(grid, numProfiles, 2)
		assert.NoError(t, err)
		assert.Equal(t, []float64{3, 4}, profiles[0])
		assert.Equal(t, []float64{1, 2}, profiles[numProfiles-1])
	}
}
