package escape

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/willbeason/escapetime/pkg/transforms"
)

// Params fully describes one generation pass.
type Params struct {
	Viewport   Viewport
	Resolution Resolution

	// MaxIter bounds the iterations per cell and is the largest possible count.
	MaxIter int

	Mode transforms.Mode

	// Workers is the number of goroutines evaluating columns.
	// Zero means runtime.NumCPU().
	Workers int
}

// Validate checks every precondition of Generate and names the first one that fails.
func (p Params) Validate() error {
	if err := p.Viewport.Validate(); err != nil {
		return err
	}
	if err := p.Resolution.Validate(); err != nil {
		return err
	}
	if p.MaxIter < 1 {
		return fmt.Errorf("%w: max iterations %d must be at least 1", ErrInvalidParameter, p.MaxIter)
	}
	if uint64(p.MaxIter) > math.MaxUint32 {
		return fmt.Errorf("%w: max iterations %d overflows a cell", ErrInvalidParameter, p.MaxIter)
	}
	if p.Mode == nil {
		return fmt.Errorf("%w: no fractal mode", ErrInvalidParameter)
	}
	if j, ok := p.Mode.(transforms.Julia); ok && (cmplx.IsNaN(j.C) || cmplx.IsInf(j.C)) {
		return fmt.Errorf("%w: julia constant %v is not finite", ErrInvalidParameter, j.C)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidParameter, p.Workers)
	}
	return nil
}

func (p Params) workers() int {
	n := p.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n > p.Resolution.Width {
		n = p.Resolution.Width
	}
	return n
}

// Linspace returns n evenly spaced values from start to end inclusive.
// A single sample is start.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	result := make([]float64, n)
	if n == 1 {
		result[0] = start
		return result
	}

	step := (end - start) / float64(n-1)
	for i := range result {
		result[i] = start + float64(i)*step
	}
	// Pin the endpoint against accumulated rounding.
	result[n-1] = end
	return result
}

// Generate evaluates every cell of p.Resolution over p.Viewport.
//
// Columns are handed out to p.Workers goroutines; each writes only its own
// column, so no locking is needed and the result does not depend on the
// schedule. Cancelling ctx abandons the pass: no partial grid is returned.
func Generate(ctx context.Context, p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	width, height := p.Resolution.Width, p.Resolution.Height
	reals := Linspace(p.Viewport.RealMin, p.Viewport.RealMax, width)
	imags := Linspace(p.Viewport.ImagMin, p.Viewport.ImagMax, height)
	grid := NewGrid(width, height)
	maxIter := uint32(p.MaxIter)
	mode := p.Mode

	columns := make(chan int)

	go func() {
		defer close(columns)
		for i := 0; i < width; i++ {
			select {
			case columns <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	parallel := p.workers()

	wg := sync.WaitGroup{}
	wg.Add(parallel)
	for w := 0; w < parallel; w++ {
		go func() {
			defer wg.Done()
			for i := range columns {
				re := reals[i]
				column := grid.Column(i)
				for j := range column {
					z, c := mode.Seed(complex(re, imags[j]))
					column[j] = Evaluate(z, c, maxIter)
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return grid, nil
}
