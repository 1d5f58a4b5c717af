package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/circsim/internal/circulation"
)

func TestDetectEvents(t *testing.T) {
	valves := []circulation.Valves{
		{true, false, true, false},
		{true, false, true, false},
		{false, false, false, false},
		{false, true, false, true},
		{false, true, false, true},
		{false, false, false, false},
		{true, false, true, false},
	}

	events := DetectEvents(valves)
	mitral := events[circulation.Mitral]
	if mitral.Valve != circulation.Mitral {
		t.Errorf("unexpected valve %v", mitral.Valve)
	}
	if len(mitral.Closes) != 1 || mitral.Closes[0] != 1 {
		t.Errorf("mitral closes = %v, want [1]", mitral.Closes)
	}
	if len(mitral.Opens) != 1 || mitral.Opens[0] != 6 {
		t.Errorf("mitral opens = %v, want [6]", mitral.Opens)
	}

	aortic := events[circulation.Aortic]
	if len(aortic.Opens) != 1 || aortic.Opens[0] != 3 {
		t.Errorf("aortic opens = %v, want [3]", aortic.Opens)
	}
	if len(aortic.Closes) != 1 || aortic.Closes[0] != 4 {
		t.Errorf("aortic closes = %v, want [4]", aortic.Closes)
	}
}

func TestLoopArea(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
		want   float64
	}{
		{"unit square", []float64{0, 1, 1, 0}, []float64{0, 0, 1, 1}, 1},
		{"reversed square", []float64{0, 0, 1, 1}, []float64{0, 1, 1, 0}, 1},
		{"pv rectangle", []float64{50, 120, 120, 50}, []float64{10, 10, 110, 110}, 7000},
		{"degenerate", []float64{0, 1}, []float64{0, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoopArea(tt.xs, tt.ys); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LoopArea = %v, want %v", got, tt.want)
			}
		})
	}
}
