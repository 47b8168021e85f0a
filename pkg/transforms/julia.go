package transforms

// Julia iterates every sample point with the same fixed constant C.
type Julia struct {
	C complex128
}

func (j Julia) Seed(p complex128) (complex128, complex128) {
	return p, j.C
}

func (Julia) Kind() Kind {
	return KindJulia
}
