package escape

// Grid holds one escape count per cell of a Resolution.
//
// Cell (i, j) is sample i along the real axis and sample j along the imaginary
// axis. Counts are stored column by column so a single column is contiguous.
type Grid struct {
	Width, Height int
	Counts        []uint32
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Counts: make([]uint32, width*height),
	}
}

func (g *Grid) At(i, j int) uint32 {
	return g.Counts[i*g.Height+j]
}

func (g *Grid) Set(i, j int, n uint32) {
	g.Counts[i*g.Height+j] = n
}

// Column returns the cells with real index i, ordered by imaginary index.
// The slice aliases the grid.
func (g *Grid) Column(i int) []uint32 {
	return g.Counts[i*g.Height : (i+1)*g.Height]
}

// Histogram counts how many cells hold each value in [0, maxIter].
func (g *Grid) Histogram(maxIter int) []int {
	h := make([]int, maxIter+1)
	for _, n := range g.Counts {
		if int(n) <= maxIter {
			h[n]++
		}
	}
	return h
}
