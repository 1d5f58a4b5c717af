package figures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/sim"
)

func syntheticOutcome() *experiment.Outcome {
	params := circulation.DefaultParameters()
	grid := sim.NewTimeGrid(0.75, 5)
	lvV := []float64{120, 110, 60, 50, 120}
	lvP := []float64{8, 100, 120, 10, 8}

	series := &sim.Series{
		Volumes:   make([]dynamo.State, 5),
		Pressures: make([]dynamo.State, 5),
	}
	for i := range lvV {
		v := dynamo.State{40, lvV[i], 10, 60, lvV[i] - 10, 10}
		p := dynamo.State{9, lvP[i], 90, 4, lvP[i] / 4, 15}
		series.Volumes[i] = v
		series.Pressures[i] = p
	}
	valves := circulation.ExtractValves(series.Pressures)

	return &experiment.Outcome{
		Params: params,
		Result: &sim.Result{Grid: grid, Series: series, Status: sim.Converged, Iterations: 1},
		Valves: valves,
		Flows:  circulation.ComputeFlows(series.Pressures, params.Resistances),
	}
}

func TestSaveAll(t *testing.T) {
	dir := t.TempDir()
	paths, err := SaveAll(dir, syntheticOutcome())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(paths) != 8 {
		t.Errorf("expected 8 figures, got %d", len(paths))
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("missing figure %s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("empty figure %s", p)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "lv_pv_loop.png")); err != nil {
		t.Errorf("expected lv_pv_loop.png: %v", err)
	}
}

func TestPVLoopRejectsMismatch(t *testing.T) {
	v := circulation.DefaultParameters().Left
	if _, err := PVLoop("lv", []float64{1, 2}, []float64{1}, v); err == nil {
		t.Error("expected error for mismatched series")
	}
	if _, err := PVLoop("lv", nil, nil, v); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestTimeSeriesRejectsMismatch(t *testing.T) {
	_, err := TimeSeries("p", "mmHg", []float64{0, 1}, []Trace{{Label: "lv", Values: []float64{1}}}, nil)
	if err == nil {
		t.Error("expected error for trace length mismatch")
	}
}
