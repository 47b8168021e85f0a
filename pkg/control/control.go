// Package control holds the interactive parameters for a fractal view and the
// actions that change them. A State is a plain value: every action returns a new
// State and the generator never sees anything but the Params derived from it.
package control

import (
	"fmt"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/palette"
	"github.com/willbeason/escapetime/pkg/transforms"
)

const (
	// ZoomFactor is the magnification of one zoom step.
	ZoomFactor = 1.1

	// PanStep is the fraction of the viewport span moved by one pan, before
	// dividing by ZoomFactor.
	PanStep = 0.1

	// IterStep is the change in iteration budget per step. The budget never drops below 1.
	IterStep = 50

	// ConstantFactor scales the Julia constant up or down.
	ConstantFactor = 1.05
)

// DefaultC is the Julia constant used when none is given.
var DefaultC = complex(-0.8, 0.156)

// State is everything the viewer can change between frames.
type State struct {
	Viewport   escape.Viewport
	Resolution escape.Resolution
	MaxIter    int

	// Palette indexes palette.Names.
	Palette int

	Mode transforms.Kind

	// C is the Julia constant. It is kept while showing the Mandelbrot set.
	C complex128

	Workers int
}

// Default frames the whole Mandelbrot set at the given resolution.
func Default(r escape.Resolution) State {
	return State{
		Viewport:   escape.Full,
		Resolution: r,
		MaxIter:    256,
		Mode:       transforms.KindMandelbrot,
		C:          DefaultC,
	}
}

// Params is the generation request for the current state.
func (s State) Params() escape.Params {
	return escape.Params{
		Viewport:   s.Viewport,
		Resolution: s.Resolution,
		MaxIter:    s.MaxIter,
		Mode:       transforms.New(s.Mode, s.C),
		Workers:    s.Workers,
	}
}

func (s State) PaletteName() string {
	return palette.Get(s.Palette).Name
}

func (s State) String() string {
	if s.Mode == transforms.KindJulia {
		return fmt.Sprintf("julia c=%v %v iter=%d palette=%s", s.C, s.Viewport, s.MaxIter, s.PaletteName())
	}
	return fmt.Sprintf("mandelbrot %v iter=%d palette=%s", s.Viewport, s.MaxIter, s.PaletteName())
}
