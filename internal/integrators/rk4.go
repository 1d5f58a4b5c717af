package integrators

import "github.com/san-kum/circsim/internal/dynamo"

// RK4 is the classical four-stage Runge-Kutta scheme in probe form: each
// stage advances the probe vector with the previous stage rate and the
// weighted rates are applied to x. With probe == x it is the textbook method.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
	result         dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
		r.result = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x, probe dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := dyn.Derive(probe, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = probe[i] + dt*0.5*r.k1[i]
	}
	k2 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = probe[i] + dt*0.5*r.k2[i]
	}
	k3 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = probe[i] + dt*r.k3[i]
	}
	k4 := dyn.Derive(r.scratch, t+dt)
	copy(r.k4, k4)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		r.result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return r.result
}
