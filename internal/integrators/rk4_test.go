package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/circsim/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, x, float64(i)*dt, dt).Clone()
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

// linearProbe returns -probe so each stage can be checked by hand.
type linearProbe struct{}

func (l *linearProbe) Derive(p dynamo.State, t float64) dynamo.State {
	return dynamo.State{-p[0]}
}

func (l *linearProbe) StateDim() int { return 1 }

func TestRK4ProbeStages(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{10}
	p := dynamo.State{2}
	h := 0.1

	k1 := -p[0]
	k2 := -(p[0] + h/2*k1)
	k3 := -(p[0] + h/2*k2)
	k4 := -(p[0] + h*k3)
	want := x[0] + h/6*(k1+2*k2+2*k3+k4)

	got := integ.Step(&linearProbe{}, x, p, 0, h)
	if math.Abs(got[0]-want) > 1e-12 {
		t.Errorf("probe step = %.12f, want %.12f", got[0], want)
	}
	if x[0] != 10 || p[0] != 2 {
		t.Error("step mutated its inputs")
	}
}

func TestEulerStep(t *testing.T) {
	integ := NewEuler()
	got := integ.Step(&linearProbe{}, dynamo.State{10}, dynamo.State{2}, 0, 0.5)
	if got[0] != 9 {
		t.Errorf("euler step = %v, want 9", got[0])
	}
}
