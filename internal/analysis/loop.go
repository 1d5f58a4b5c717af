package analysis

import "math"

// LoopArea is the area enclosed by the closed polyline (xs[i], ys[i]),
// computed with the shoelace formula. For a PV loop it is the stroke work.
func LoopArea(xs, ys []float64) float64 {
	n := len(xs)
	if n < 3 || len(ys) != n {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += xs[i]*ys[j] - xs[j]*ys[i]
	}
	return math.Abs(sum) / 2
}
