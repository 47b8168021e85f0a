package escape

import "github.com/willbeason/escapetime/pkg/transforms"

// EscapeRadius is the magnitude beyond which the recurrence is known to diverge.
const EscapeRadius = 2.0

const escapeRadiusSq = EscapeRadius * EscapeRadius

// Evaluate returns the index of the first iteration at which |z| > 2, starting
// from z and applying z <- z*z + c between checks. It returns maxIter if the orbit
// stays bounded that long.
func Evaluate(z, c complex128, maxIter uint32) uint32 {
	for n := uint32(0); n < maxIter; n++ {
		if real(z)*real(z)+imag(z)*imag(z) > escapeRadiusSq {
			return n
		}
		z = transforms.Next(z, c)
	}
	return maxIter
}
