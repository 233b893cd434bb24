package ridgeline

// A Grid is a read-only two-dimensional grid of elevation samples in meters.
// Row 0 is the northernmost row.
type Grid interface {
	Height() int
	Width() int
	Sample(row, col int) float64
}

// A MemGrid is an in-memory Grid.
type MemGrid struct {
	samples [][]float64
}

// NewMemGrid returns a new MemGrid backed by samples. All rows must have the
// same length. The grid does not copy samples; callers must not modify them
// afterwards.
func NewMemGrid(samples [][]float64) *MemGrid {
	return &MemGrid{samples: samples}
}

// Height returns the number of rows in g.
func (g *MemGrid) Height() int {
	return len(g.samples)
}

// Width returns the number of columns in g.
func (g *MemGrid) Width() int {
	if len(g.samples) == 0 {
		return 0
	}
	return len(g.samples[0])
}

// Sample returns the elevation sample at row, col.
func (g *MemGrid) Sample(row, col int) float64 {
	return g.samples[row][col]
}
