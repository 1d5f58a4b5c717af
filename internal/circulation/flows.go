package circulation

import "github.com/san-kum/circsim/internal/dynamo"

// Path names a directed compartment-to-compartment flow.
type Path int

const (
	PulmonaryArteryToVein Path = iota
	PulmonaryVeinToLeftVentricle
	LeftVentricleToSystemicArtery
	SystemicArteryToVein
	SystemicVeinToRightVentricle
	RightVentricleToPulmonaryArtery
)

const NumPaths = 6

var pathNames = [...]string{"pa_to_pv", "pv_to_lv", "lv_to_sa", "sa_to_sv", "sv_to_rv", "rv_to_pa"}

func (p Path) String() string {
	if p < 0 || int(p) >= len(pathNames) {
		return "unknown"
	}
	return pathNames[p]
}

// PathFlows returns the six directed flows (ml/s) at one pressure sample,
// gated exactly like the flow dynamics.
func (r Resistances) PathFlows(p dynamo.State) dynamo.State {
	return dynamo.State{
		PulmonaryArteryToVein:           open(p[PulmonaryArteries], p[PulmonaryVeins], r.PulmonaryArterial),
		PulmonaryVeinToLeftVentricle:    diode(p[PulmonaryVeins], p[LeftVentricle], r.PulmonaryVenous),
		LeftVentricleToSystemicArtery:   diode(p[LeftVentricle], p[SystemicArteries], r.AorticValve),
		SystemicArteryToVein:            open(p[SystemicArteries], p[SystemicVeins], r.SystemicArterial),
		SystemicVeinToRightVentricle:    diode(p[SystemicVeins], p[RightVentricle], r.SystemicVenous),
		RightVentricleToPulmonaryArtery: diode(p[RightVentricle], p[PulmonaryArteries], r.PulmonicValve),
	}
}

// ComputeFlows maps a pressure series to its flow series.
func ComputeFlows(pressures []dynamo.State, r Resistances) []dynamo.State {
	out := make([]dynamo.State, len(pressures))
	for i, p := range pressures {
		out[i] = r.PathFlows(p)
	}
	return out
}
