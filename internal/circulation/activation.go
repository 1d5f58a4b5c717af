package circulation

import "math"

// Activation returns the ventricular activation fraction at elapsed cycle
// time t: a raised cosine that peaks at 1 when t == tes and is 0 from 2*tes
// until the end of the cycle.
func Activation(t, tes float64) float64 {
	if t < 2*tes {
		return 0.5 * (1 - math.Cos(math.Pi*t/tes))
	}
	return 0
}
