package integrators

import "github.com/san-kum/circsim/internal/dynamo"

type Euler struct {
	result dynamo.State
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x, probe dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(probe, t)
	if len(e.result) != len(x) {
		e.result = make(dynamo.State, len(x))
	}
	for i := range x {
		e.result[i] = x[i] + dt*dx[i]
	}
	return e.result
}
