package escape

import (
	"fmt"
	"math"
	"sort"

	"github.com/willbeason/escapetime/pkg/transforms"
)

// Viewport is a rectangle of the complex plane.
type Viewport struct {
	RealMin, RealMax float64
	ImagMin, ImagMax float64
}

// Validate reports whether both axes are finite with min < max.
// Inverted or degenerate viewports are rejected, never corrected.
func (v Viewport) Validate() error {
	for _, f := range []float64{v.RealMin, v.RealMax, v.ImagMin, v.ImagMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: viewport bound %v is not finite", ErrInvalidParameter, f)
		}
	}
	if !(v.RealMin < v.RealMax) {
		return fmt.Errorf("%w: real axis min %g must be below max %g", ErrInvalidParameter, v.RealMin, v.RealMax)
	}
	if !(v.ImagMin < v.ImagMax) {
		return fmt.Errorf("%w: imaginary axis min %g must be below max %g", ErrInvalidParameter, v.ImagMin, v.ImagMax)
	}
	return nil
}

func (v Viewport) Min() complex128 {
	return complex(v.RealMin, v.ImagMin)
}

func (v Viewport) Max() complex128 {
	return complex(v.RealMax, v.ImagMax)
}

func (v Viewport) Center() complex128 {
	return complex((v.RealMin+v.RealMax)/2, (v.ImagMin+v.ImagMax)/2)
}

// Span is the width of the viewport as the real part and its height as the imaginary part.
func (v Viewport) Span() complex128 {
	return complex(v.RealMax-v.RealMin, v.ImagMax-v.ImagMin)
}

// Transform maps both corners through l. Only translations and positive real
// scalings keep the result a valid viewport; other maps are the caller's problem.
func (v Viewport) Transform(l transforms.Linear) Viewport {
	lo := l.Next(v.Min())
	hi := l.Next(v.Max())
	return Viewport{
		RealMin: real(lo), RealMax: real(hi),
		ImagMin: imag(lo), ImagMax: imag(hi),
	}
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", v.RealMin, v.RealMax, v.ImagMin, v.ImagMax)
}

// Full frames the whole Mandelbrot set.
var Full = Viewport{RealMin: -2, RealMax: 1, ImagMin: -1.5, ImagMax: 1.5}

// Classic landmarks in the Mandelbrot set.
var (
	// SeahorseValley has dense filaments and repeating seahorse curls.
	SeahorseValley = Viewport{RealMin: -0.8, RealMax: -0.7, ImagMin: 0.05, ImagMax: 0.15}

	// ElephantValley is a large bulb with trunk-like tendrils.
	ElephantValley = Viewport{RealMin: 0.25, RealMax: 0.35, ImagMin: -0.05, ImagMax: 0.05}

	// SpiralMinibrot is a small Mandelbrot copy with tight spiral arms.
	SpiralMinibrot = Viewport{RealMin: -0.7435, RealMax: -0.7420, ImagMin: 0.1310, ImagMax: 0.1325}

	// TripleSpiral has threefold symmetric spirals.
	TripleSpiral = Viewport{RealMin: -0.7480, RealMax: -0.7450, ImagMin: 0.0950, ImagMax: 0.0980}
)

var regions = map[string]Viewport{
	"full":            Full,
	"seahorse-valley": SeahorseValley,
	"elephant-valley": ElephantValley,
	"spiral-minibrot": SpiralMinibrot,
	"triple-spiral":   TripleSpiral,
}

// Region looks up a named viewport.
func Region(name string) (Viewport, bool) {
	v, ok := regions[name]
	return v, ok
}

// Regions lists the names accepted by Region.
func Regions() []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolution is the size of the sampling grid in cells.
type Resolution struct {
	Width, Height int
}

func (r Resolution) Validate() error {
	if r.Width < 1 {
		return fmt.Errorf("%w: width %d must be at least 1", ErrInvalidParameter, r.Width)
	}
	if r.Height < 1 {
		return fmt.Errorf("%w: height %d must be at least 1", ErrInvalidParameter, r.Height)
	}
	return nil
}

func (r Resolution) Cells() int {
	return r.Width * r.Height
}
