package control

import (
	"github.com/willbeason/escapetime/pkg/palette"
	"github.com/willbeason/escapetime/pkg/transforms"
)

// An Action is one discrete user command.
type Action int

const (
	NextPalette Action = iota
	PrevPalette
	ShowMandelbrot
	ShowJulia
	ToggleMode
	GrowConstant
	ShrinkConstant
	MoreIterations
	FewerIterations
	PanLeft
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
)

var actionNames = [...]string{
	NextPalette:     "next-palette",
	PrevPalette:     "prev-palette",
	ShowMandelbrot:  "show-mandelbrot",
	ShowJulia:       "show-julia",
	ToggleMode:      "toggle-mode",
	GrowConstant:    "grow-constant",
	ShrinkConstant:  "shrink-constant",
	MoreIterations:  "more-iterations",
	FewerIterations: "fewer-iterations",
	PanLeft:         "pan-left",
	PanRight:        "pan-right",
	PanUp:           "pan-up",
	PanDown:         "pan-down",
	ZoomIn:          "zoom-in",
	ZoomOut:         "zoom-out",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Apply returns s after performing a. Unknown actions leave s unchanged.
//
// Viewport bounds are moved without validation; a view that drifts into an
// invalid shape is rejected by the generator, not repaired here.
func (s State) Apply(a Action) State {
	switch a {
	case NextPalette:
		s.Palette = (s.Palette + 1) % palette.Len()
	case PrevPalette:
		s.Palette = (s.Palette - 1 + palette.Len()) % palette.Len()
	case ShowMandelbrot:
		s.Mode = transforms.KindMandelbrot
	case ShowJulia:
		s.Mode = transforms.KindJulia
	case ToggleMode:
		if s.Mode == transforms.KindJulia {
			s.Mode = transforms.KindMandelbrot
		} else {
			s.Mode = transforms.KindJulia
		}
	case GrowConstant:
		if s.Mode == transforms.KindJulia {
			s.C *= ConstantFactor
		}
	case ShrinkConstant:
		if s.Mode == transforms.KindJulia {
			s.C /= ConstantFactor
		}
	case MoreIterations:
		s.MaxIter += IterStep
	case FewerIterations:
		s.MaxIter -= IterStep
		if s.MaxIter < 1 {
			s.MaxIter = 1
		}
	case PanLeft:
		s.Viewport = s.pan(-1, 0)
	case PanRight:
		s.Viewport = s.pan(1, 0)
	case PanUp:
		s.Viewport = s.pan(0, 1)
	case PanDown:
		s.Viewport = s.pan(0, -1)
	case ZoomIn:
		s.Viewport = s.Viewport.Transform(transforms.ZoomAbout(s.Viewport.Center(), 1/ZoomFactor))
	case ZoomOut:
		s.Viewport = s.Viewport.Transform(transforms.ZoomAbout(s.Viewport.Center(), ZoomFactor))
	}
	return s
}
