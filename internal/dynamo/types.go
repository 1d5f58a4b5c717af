package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

// AbsDiff returns |s - other| element-wise.
func (s State) AbsDiff(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = math.Abs(s[i] - other[i])
		} else {
			result[i] = math.Abs(s[i])
		}
	}
	return result
}

// Max returns the largest element, or 0 for an empty state.
func (s State) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// System supplies the rate of change of the integrated vector as a function
// of a probe vector. For the circulation the probe is the pressure vector and
// the integrated vector holds volumes.
type System interface {
	Derive(probe State, t float64) State
	StateDim() int
}

// Integrator advances x by one step of size dt. probe is the vector the
// derivative is evaluated on; it is advanced with the stage rates, while x
// receives the weighted combination. The returned slice may be reused by the
// next call.
type Integrator interface {
	Step(dyn System, x, probe State, t, dt float64) State
}
