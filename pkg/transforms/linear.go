package transforms

// Linear is the affine map z -> z*Multiply + Add.
type Linear struct {
	Multiply complex128
	Add      complex128
}

func (l Linear) Next(z complex128) complex128 {
	return z*l.Multiply + l.Add
}

// Translate moves every point by d.
func Translate(d complex128) Linear {
	return Linear{Multiply: 1, Add: d}
}

// ZoomAbout scales distances from center by factor, leaving center fixed.
// A factor below 1 zooms in.
func ZoomAbout(center complex128, factor float64) Linear {
	f := complex(factor, 0)
	return Linear{Multiply: f, Add: center * (1 - f)}
}
