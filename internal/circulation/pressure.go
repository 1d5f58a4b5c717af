package circulation

import (
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

// ESP is the end-systolic (linear) pressure at volume v.
func (vp Ventricle) ESP(v float64) float64 {
	return vp.Ees * (v - vp.V0)
}

// EDP is the end-diastolic (exponential) pressure at volume v.
func (vp Ventricle) EDP(v float64) float64 {
	return vp.B * (math.Exp(vp.A*(v-vp.V0)) - 1)
}

// Pressure blends EDP and ESP by the activation fraction eps.
func (vp Ventricle) Pressure(v, eps float64) float64 {
	esp := vp.ESP(v)
	edp := vp.EDP(v)
	return eps*(esp-edp) + edp
}

// CapacitorPressure is the pressure of an ideal linear compliance.
func CapacitorPressure(v, c float64) float64 {
	return v / c
}

// PressuresAt writes the pressure vector for volumes v at activation eps.
func (p Parameters) PressuresAt(dst, v dynamo.State, eps float64) {
	c := p.Capacitances
	dst[PulmonaryVeins] = CapacitorPressure(v[PulmonaryVeins], c.PulmonaryVenous)
	dst[SystemicArteries] = CapacitorPressure(v[SystemicArteries], c.SystemicArterial)
	dst[SystemicVeins] = CapacitorPressure(v[SystemicVeins], c.SystemicVenous)
	dst[PulmonaryArteries] = CapacitorPressure(v[PulmonaryArteries], c.PulmonaryArterial)

	dst[RightVentricle] = p.Right.Pressure(v[RightVentricle], eps)
	dst[LeftVentricle] = p.Left.Pressure(v[LeftVentricle], eps)
}
