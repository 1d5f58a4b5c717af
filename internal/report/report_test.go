package report

import (
	"math"
	"testing"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/sim"
)

func syntheticCycle() (sim.TimeGrid, []dynamo.State, []dynamo.State, []circulation.Valves) {
	grid := sim.NewTimeGrid(0.75, 5)
	lvVol := []float64{120, 110, 60, 50, 120}
	lvP := []float64{8, 100, 120, 10, 8}
	saP := []float64{80, 100, 115, 90, 80}

	volumes := make([]dynamo.State, 5)
	pressures := make([]dynamo.State, 5)
	for i := range volumes {
		volumes[i] = dynamo.State{20, lvVol[i], 40, 150, 60, 15}
		pressures[i] = dynamo.State{9, lvP[i], saP[i], 5, 4, 14}
	}
	return grid, volumes, pressures, circulation.ExtractValves(pressures)
}

func TestCompute(t *testing.T) {
	grid, volumes, pressures, valves := syntheticCycle()
	idx := Compute(grid, volumes, pressures, valves)

	if idx.SystolicPressure != 115 || idx.DiastolicPressure != 80 {
		t.Errorf("SBP/DBP = %v/%v, want 115/80", idx.SystolicPressure, idx.DiastolicPressure)
	}
	if want := 115.0/3 + 2*80.0/3; math.Abs(idx.MeanPressure-want) > 1e-12 {
		t.Errorf("MAP = %v, want %v", idx.MeanPressure, want)
	}
	if idx.StrokeVolume != 70 {
		t.Errorf("SV = %v, want 70", idx.StrokeVolume)
	}
	if want := 70 * 80.0 / 1000; math.Abs(idx.CardiacOutput-want) > 1e-12 {
		t.Errorf("CO = %v, want %v", idx.CardiacOutput, want)
	}
	if want := 92 / grid.Step; math.Abs(idx.MaxDPDT-want) > 1e-9 {
		t.Errorf("max dP/dt = %v, want %v", idx.MaxDPDT, want)
	}
	// Mitral is open at sample 0 (9 > 8) and shut at sample 1.
	if !idx.HasEDP || idx.EDP != 8 {
		t.Errorf("EDP = %v (%v), want 8", idx.EDP, idx.HasEDP)
	}
	if idx.StrokeWork <= 0 {
		t.Errorf("stroke work = %v, want > 0", idx.StrokeWork)
	}
	if idx.RightStrokeVolume != 0 {
		t.Errorf("RV SV = %v, want 0", idx.RightStrokeVolume)
	}
}

func TestComputeWithoutMitralClosure(t *testing.T) {
	grid, volumes, pressures, _ := syntheticCycle()
	valves := make([]circulation.Valves, len(pressures))
	idx := Compute(grid, volumes, pressures, valves)
	if idx.HasEDP {
		t.Error("expected no EDP when the mitral valve never closes")
	}
}

func TestComputeEmpty(t *testing.T) {
	idx := Compute(sim.NewTimeGrid(1, 2), nil, nil, nil)
	if idx != (Indices{}) {
		t.Errorf("expected zero indices, got %+v", idx)
	}
}

func TestNamed(t *testing.T) {
	named := Indices{SystolicPressure: 120, EDP: 9}.Named()
	if named["sbp"] != 120 {
		t.Errorf("expected sbp 120, got %v", named["sbp"])
	}
	if _, ok := named["edp"]; ok {
		t.Error("edp should be omitted without a mitral closure")
	}

	named = Indices{EDP: 9, HasEDP: true}.Named()
	if named["edp"] != 9 {
		t.Errorf("expected edp 9, got %v", named["edp"])
	}
}
