package transforms

import (
	"fmt"
	"strings"
)

// A Mode decides how a sample point seeds the quadratic recurrence.
//
// Mandelbrot and Julia are the only implementations; both share Next and differ
// only in which operand is fixed.
type Mode interface {
	// Seed returns the starting value and the recurrence constant for sample point p.
	Seed(p complex128) (z, c complex128)

	// Kind identifies the variant.
	Kind() Kind
}

// Next applies one step of the recurrence z <- z*z + c.
func Next(z, c complex128) complex128 {
	return z*z + c
}

// Kind tags a Mode variant.
type Kind int

const (
	KindMandelbrot Kind = iota
	KindJulia
)

func (k Kind) String() string {
	switch k {
	case KindMandelbrot:
		return "mandelbrot"
	case KindJulia:
		return "julia"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mandelbrot", "m":
		return KindMandelbrot, nil
	case "julia", "j":
		return KindJulia, nil
	default:
		return 0, fmt.Errorf("unknown fractal mode %q (want mandelbrot or julia)", s)
	}
}

// New builds the Mode for k. The constant c is ignored for Mandelbrot.
func New(k Kind, c complex128) Mode {
	if k == KindJulia {
		return Julia{C: c}
	}
	return Mandelbrot{}
}

var (
	_ Mode = Mandelbrot{}
	_ Mode = Julia{}
)
