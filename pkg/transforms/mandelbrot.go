package transforms

// Mandelbrot iterates every sample point with itself as the constant.
type Mandelbrot struct{}

func (Mandelbrot) Seed(p complex128) (complex128, complex128) {
	return p, p
}

func (Mandelbrot) Kind() Kind {
	return KindMandelbrot
}
