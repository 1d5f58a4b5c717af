package circulation

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/circsim/internal/dynamo"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if math.Abs(p.CycleLength()-0.75) > 1e-12 {
		t.Errorf("cycle length = %v, want 0.75", p.CycleLength())
	}
	if math.Abs(p.TimeToEndSystole()-0.2) > 1e-12 {
		t.Errorf("tes = %v, want 0.2", p.TimeToEndSystole())
	}
	if math.Abs(p.Right.Ees-3) > 1e-12 {
		t.Errorf("RV Ees = %v, want 3", p.Right.Ees)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero resistance", func(p *Parameters) { p.Resistances.AorticValve = 0 }},
		{"negative resistance", func(p *Parameters) { p.Resistances.SystemicArterial = -2.5 }},
		{"NaN resistance", func(p *Parameters) { p.Resistances.PulmonaryVenous = math.NaN() }},
		{"zero capacitance", func(p *Parameters) { p.Capacitances.SystemicVenous = 0 }},
		{"infinite capacitance", func(p *Parameters) { p.Capacitances.PulmonaryArterial = math.Inf(1) }},
		{"zero heart rate", func(p *Parameters) { p.HeartRate = 0 }},
		{"negative volume", func(p *Parameters) { p.StressedVolume = -1 }},
		{"NaN stiffness", func(p *Parameters) { p.Left.A = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("Validate() = %v, want ErrParameterBounds", err)
			}
			if _, err := NewModel(p); err == nil {
				t.Error("NewModel accepted invalid parameters")
			}
		})
	}
}

func TestSeedVolumes(t *testing.T) {
	m, err := NewModel(DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	seed := m.SeedVolumes()
	if len(seed) != NumCompartments {
		t.Fatalf("seed dim = %d", len(seed))
	}
	if math.Abs(seed.Sum()-250) > 1e-9 {
		t.Errorf("seed total = %v, want 250", seed.Sum())
	}
	for _, c := range Compartments() {
		if seed[c] != seed[PulmonaryVeins] {
			t.Errorf("seed not uniform at %s", c)
		}
	}
}
