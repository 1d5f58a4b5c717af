// Package report computes the clinical summary indices of a converged cycle.
package report

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/sim"
)

// Indices summarises one cycle. EDP is only meaningful when HasEDP is set.
type Indices struct {
	SystolicPressure  float64 `json:"sbp"`       // mmHg
	DiastolicPressure float64 `json:"dbp"`       // mmHg
	MeanPressure      float64 `json:"map"`       // mmHg
	StrokeVolume      float64 `json:"sv"`        // ml
	RightStrokeVolume float64 `json:"rv_sv"`     // ml
	CardiacOutput     float64 `json:"co"`        // L/min
	MaxDPDT           float64 `json:"max_dp_dt"` // mmHg/s
	EDP               float64 `json:"edp"`       // mmHg
	HasEDP            bool    `json:"has_edp"`
	StrokeWork        float64 `json:"stroke_work"` // mmHg*ml
}

// Compute derives the indices from a cycle's series and valve states.
func Compute(grid sim.TimeGrid, volumes, pressures []dynamo.State, valves []circulation.Valves) Indices {
	var idx Indices
	if len(volumes) < 2 || len(pressures) != len(volumes) {
		return idx
	}

	sa := sim.Column(pressures, int(circulation.SystemicArteries))
	lvP := sim.Column(pressures, int(circulation.LeftVentricle))
	lvV := sim.Column(volumes, int(circulation.LeftVentricle))
	rvV := sim.Column(volumes, int(circulation.RightVentricle))

	idx.SystolicPressure = floats.Max(sa)
	idx.DiastolicPressure = floats.Min(sa)
	idx.MeanPressure = idx.SystolicPressure/3 + 2*idx.DiastolicPressure/3
	idx.StrokeVolume = floats.Max(lvV) - floats.Min(lvV)
	idx.RightStrokeVolume = floats.Max(rvV) - floats.Min(rvV)
	idx.CardiacOutput = idx.StrokeVolume * (60 / grid.Length()) / 1000
	idx.MaxDPDT = maxSlope(grid.Times, lvP)
	idx.StrokeWork = analysis.LoopArea(lvV, lvP)

	events := analysis.DetectEvents(valves)
	if closes := events[circulation.Mitral].Closes; len(closes) > 0 {
		idx.EDP = lvP[closes[0]]
		idx.HasEDP = true
	}
	return idx
}

// FromResult computes the indices of a solver result.
func FromResult(r *sim.Result) (Indices, []circulation.Valves) {
	valves := circulation.ExtractValves(r.Series.Pressures)
	return Compute(r.Grid, r.Series.Volumes, r.Series.Pressures, valves), valves
}

func maxSlope(ts, ys []float64) float64 {
	best := math.Inf(-1)
	for i := 1; i < len(ys); i++ {
		dt := ts[i] - ts[i-1]
		if dt == 0 {
			continue
		}
		best = math.Max(best, (ys[i]-ys[i-1])/dt)
	}
	return best
}

// Named flattens the indices by their short names. EDP is left out when no
// mitral closure was seen.
func (i Indices) Named() map[string]float64 {
	out := map[string]float64{
		"sbp":         i.SystolicPressure,
		"dbp":         i.DiastolicPressure,
		"map":         i.MeanPressure,
		"sv":          i.StrokeVolume,
		"rv_sv":       i.RightStrokeVolume,
		"co":          i.CardiacOutput,
		"max_dp_dt":   i.MaxDPDT,
		"stroke_work": i.StrokeWork,
	}
	if i.HasEDP {
		out["edp"] = i.EDP
	}
	return out
}
