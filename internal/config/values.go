package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/willbeason/escapetime/pkg/escape"
	"github.com/willbeason/escapetime/pkg/transforms"
)

var (
	_ pflag.Value = (*ComplexValue)(nil)
	_ pflag.Value = (*ViewportValue)(nil)
	_ pflag.Value = (*ModeValue)(nil)
)

// ComplexValue is a flag holding a complex number like -0.8+0.156i or (1-2i).
type ComplexValue complex128

func (v *ComplexValue) String() string {
	return strconv.FormatComplex(complex128(*v), 'g', -1, 128)
}

func (v *ComplexValue) Set(s string) error {
	c, err := ParseComplex(s)
	if err != nil {
		return err
	}
	*v = ComplexValue(c)
	return nil
}

func (v *ComplexValue) Type() string {
	return "complex"
}

// ParseComplex accepts the forms of strconv.ParseComplex with surrounding spaces
// and a j suffix in place of i.
func ParseComplex(s string) (complex128, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "j", "i")
	c, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, fmt.Errorf("parsing complex number %q: %w", s, err)
	}
	return c, nil
}

// ViewportValue is a flag holding a viewport as four comma-separated bounds or a region name.
type ViewportValue escape.Viewport

func (v *ViewportValue) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", v.RealMin, v.RealMax, v.ImagMin, v.ImagMax)
}

func (v *ViewportValue) Set(s string) error {
	vp, err := ParseViewport(s)
	if err != nil {
		return err
	}
	*v = ViewportValue(vp)
	return nil
}

func (v *ViewportValue) Type() string {
	return "viewport"
}

// ParseViewport reads "xmin,xmax,ymin,ymax" or a named region. The bounds are
// not checked for order.
func ParseViewport(s string) (escape.Viewport, error) {
	s = strings.TrimSpace(s)
	if vp, ok := escape.Region(s); ok {
		return vp, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return escape.Viewport{}, fmt.Errorf("viewport %q: want xmin,xmax,ymin,ymax or a region name", s)
	}

	var bounds [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return escape.Viewport{}, fmt.Errorf("viewport %q: %w", s, err)
		}
		bounds[i] = f
	}

	return escape.Viewport{
		RealMin: bounds[0], RealMax: bounds[1],
		ImagMin: bounds[2], ImagMax: bounds[3],
	}, nil
}

// ModeValue is a flag holding a fractal kind.
type ModeValue transforms.Kind

func (v *ModeValue) String() string {
	return transforms.Kind(*v).String()
}

func (v *ModeValue) Set(s string) error {
	k, err := transforms.ParseKind(s)
	if err != nil {
		return err
	}
	*v = ModeValue(k)
	return nil
}

func (v *ModeValue) Type() string {
	return "mode"
}
