package control

import (
	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/transforms"
)

// pan shifts the viewport by dx steps along the real axis and dy along the imaginary axis.
func (s State) pan(dx, dy float64) escape.Viewport {
	span := s.Viewport.Span()
	step := PanStep / ZoomFactor
	d := complex(dx*step*real(span), dy*step*imag(span))
	return s.Viewport.Transform(transforms.Translate(d))
}
