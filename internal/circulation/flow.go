package circulation

import "github.com/san-kum/circsim/internal/dynamo"

// diode conducts only from up to down; a closed gate contributes exactly 0.
func diode(up, down, r float64) float64 {
	if up > down {
		return (up - down) / r
	}
	return 0
}

// open conducts in both directions, positive from a to b.
func open(a, b, r float64) float64 {
	return (a - b) / r
}

// mitralFlow is the net pulmonary-vein to LV flow: forward through the
// mitral path minus the reverse flow through the reserved infarct path.
func mitralFlow(p dynamo.State, r Resistances) float64 {
	forward := diode(p[PulmonaryVeins], p[LeftVentricle], r.PulmonaryVenous)
	reverse := diode(p[LeftVentricle], p[PulmonaryVeins], r.Infarct())
	return forward - reverse
}

func dvPulmonaryVeins(p dynamo.State, r Resistances) float64 {
	in := open(p[PulmonaryArteries], p[PulmonaryVeins], r.PulmonaryArterial)
	out := mitralFlow(p, r)
	return in - out
}

func dvLeftVentricle(p dynamo.State, r Resistances) float64 {
	in := mitralFlow(p, r)
	out := diode(p[LeftVentricle], p[SystemicArteries], r.AorticValve)
	return in - out
}

func dvSystemicArteries(p dynamo.State, r Resistances) float64 {
	in := diode(p[LeftVentricle], p[SystemicArteries], r.AorticValve)
	out := open(p[SystemicArteries], p[SystemicVeins], r.SystemicArterial)
	return in - out
}

func dvSystemicVeins(p dynamo.State, r Resistances) float64 {
	in := open(p[SystemicArteries], p[SystemicVeins], r.SystemicArterial)
	out := diode(p[SystemicVeins], p[RightVentricle], r.SystemicVenous)
	return in - out
}

func dvRightVentricle(p dynamo.State, r Resistances) float64 {
	in := diode(p[SystemicVeins], p[RightVentricle], r.SystemicVenous)
	out := diode(p[RightVentricle], p[PulmonaryArteries], r.PulmonicValve)
	return in - out
}

func dvPulmonaryArteries(p dynamo.State, r Resistances) float64 {
	in := diode(p[RightVentricle], p[PulmonaryArteries], r.PulmonicValve)
	out := open(p[PulmonaryArteries], p[PulmonaryVeins], r.PulmonaryArterial)
	return in - out
}

// Rates returns the rate of volume change of every compartment (ml/s) for
// the pressure vector p.
func (r Resistances) Rates(p dynamo.State) dynamo.State {
	return dynamo.State{
		PulmonaryVeins:    dvPulmonaryVeins(p, r),
		LeftVentricle:     dvLeftVentricle(p, r),
		SystemicArteries:  dvSystemicArteries(p, r),
		SystemicVeins:     dvSystemicVeins(p, r),
		RightVentricle:    dvRightVentricle(p, r),
		PulmonaryArteries: dvPulmonaryArteries(p, r),
	}
}
