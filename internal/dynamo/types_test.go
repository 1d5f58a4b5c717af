package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_AbsDiff(t *testing.T) {
	a := State{1, 5, -3}
	b := State{2, 3, -3}

	d := a.AbsDiff(b)
	want := State{1, 2, 0}
	for i := range want {
		if d[i] != want[i] {
			t.Errorf("AbsDiff[%d] = %v, want %v", i, d[i], want[i])
		}
	}
	if d.Max() != 2 {
		t.Errorf("Max() = %v, want 2", d.Max())
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	a := State{1, 2}
	c := a.Clone()
	c[0] = 10
	if a[0] != 1 {
		t.Error("clone shares backing array")
	}
	if a.Sum() != 3 {
		t.Errorf("Sum() = %v, want 3", a.Sum())
	}
}

func TestSimulationError_Unwrap(t *testing.T) {
	err := &SimulationError{Cycle: 1, Step: 3, Time: 0.2, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected errors.Is to match ErrInvalidState")
	}
	if !errors.Is(BoundsError("capacitance", 0), ErrParameterBounds) {
		t.Error("expected BoundsError to wrap ErrParameterBounds")
	}
}
