package circulation

import (
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

const (
	// SystoleFraction is time-to-end-systole as a fraction of cycle length.
	SystoleFraction = 0.2 / 0.75

	// RightElastanceRatio scales LV Ees to the RV Ees.
	RightElastanceRatio = 3.0 / 7.0
)

// Capacitances of the passive vascular compartments (ml/mmHg).
type Capacitances struct {
	PulmonaryVenous   float64
	SystemicArterial  float64
	SystemicVenous    float64
	PulmonaryArterial float64
}

// Resistances of the flow paths (mmHg*s/ml).
type Resistances struct {
	PulmonaryVenous   float64
	AorticValve       float64
	SystemicArterial  float64
	SystemicVenous    float64
	PulmonicValve     float64
	PulmonaryArterial float64
}

// Infarct is the resistance of the reserved scar path. It never conducts.
func (r Resistances) Infarct() float64 {
	return math.Inf(1)
}

// Ventricle holds the pressure-volume constants of one ventricle.
type Ventricle struct {
	A   float64 // EDPVR exponential stiffness (1/ml)
	B   float64 // EDPVR linear scale (mmHg)
	Ees float64 // end-systolic elastance (mmHg/ml)
	V0  float64 // unloaded volume (ml)
}

// Parameters is the immutable parameter set of one model instance.
type Parameters struct {
	HeartRate      float64 // beats/min
	StressedVolume float64 // ml
	Capacitances   Capacitances
	Resistances    Resistances
	Left           Ventricle
	Right          Ventricle
}

// DefaultParameters returns the reference canine parameter set.
func DefaultParameters() Parameters {
	const (
		lvEes = 7.0
		b     = 0.35
		v0    = 5.0
	)
	return Parameters{
		HeartRate:      80,
		StressedVolume: 250,
		Capacitances: Capacitances{
			PulmonaryVenous:   3,
			SystemicArterial:  0.40,
			SystemicVenous:    17,
			PulmonaryArterial: 2,
		},
		Resistances: Resistances{
			PulmonaryVenous:   0.015,
			AorticValve:       0.2,
			SystemicArterial:  2.5,
			SystemicVenous:    0.015,
			PulmonicValve:     0.06,
			PulmonaryArterial: 0.30,
		},
		Left:  Ventricle{A: 0.1, B: b, Ees: lvEes, V0: v0},
		Right: Ventricle{A: 0.09, B: b, Ees: lvEes * RightElastanceRatio, V0: v0},
	}
}

// CycleLength is the duration of one beat in seconds.
func (p Parameters) CycleLength() float64 {
	return 60 / p.HeartRate
}

// TimeToEndSystole is the activation peak time in seconds.
func (p Parameters) TimeToEndSystole() float64 {
	return SystoleFraction * p.CycleLength()
}

// Validate rejects values that would divide by zero or propagate non-finite
// numbers through the pressure and flow laws.
func (p Parameters) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"heart_rate", p.HeartRate},
		{"stressed_volume", p.StressedVolume},
		{"capacitances.pulmonary_venous", p.Capacitances.PulmonaryVenous},
		{"capacitances.systemic_arterial", p.Capacitances.SystemicArterial},
		{"capacitances.systemic_venous", p.Capacitances.SystemicVenous},
		{"capacitances.pulmonary_arterial", p.Capacitances.PulmonaryArterial},
		{"resistances.pulmonary_venous", p.Resistances.PulmonaryVenous},
		{"resistances.aortic_valve", p.Resistances.AorticValve},
		{"resistances.systemic_arterial", p.Resistances.SystemicArterial},
		{"resistances.systemic_venous", p.Resistances.SystemicVenous},
		{"resistances.pulmonic_valve", p.Resistances.PulmonicValve},
		{"resistances.pulmonary_arterial", p.Resistances.PulmonaryArterial},
		{"left.ees", p.Left.Ees},
		{"right.ees", p.Right.Ees},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return dynamo.BoundsError(f.name, f.value)
		}
	}

	finite := []struct {
		name  string
		value float64
	}{
		{"left.a", p.Left.A},
		{"left.b", p.Left.B},
		{"left.v0", p.Left.V0},
		{"right.a", p.Right.A},
		{"right.b", p.Right.B},
		{"right.v0", p.Right.V0},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return dynamo.BoundsError(f.name, f.value)
		}
	}
	return nil
}
