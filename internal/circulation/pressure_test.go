package circulation

import (
	"math"
	"testing"

	"github.com/san-kum/circsim/internal/dynamo"
)

func TestVentriclePressureLaws(t *testing.T) {
	ventricles := []Ventricle{
		{A: 0.1, B: 0.35, Ees: 7, V0: 5},
		{A: 0.09, B: 0.35, Ees: 3, V0: 5},
		{A: 0.02, B: 1.2, Ees: 2.5, V0: 10},
	}
	volumes := []float64{0, 5, 30, 80, 140}

	for _, vp := range ventricles {
		for _, v := range volumes {
			edp := vp.B * (math.Exp(vp.A*(v-vp.V0)) - 1)
			esp := vp.Ees * (v - vp.V0)

			if got := vp.Pressure(v, 0); got != edp {
				t.Errorf("%+v at V=%v eps=0: got %v, want EDPVR %v", vp, v, got, edp)
			}
			if got := vp.Pressure(v, 1); math.Abs(got-esp) > 1e-12*math.Max(1, math.Abs(esp)) {
				t.Errorf("%+v at V=%v eps=1: got %v, want ESPVR %v", vp, v, got, esp)
			}
		}
	}
}

func TestUnloadedVolumeHasZeroPressure(t *testing.T) {
	vp := Ventricle{A: 0.1, B: 0.35, Ees: 7, V0: 5}
	for _, eps := range []float64{0, 0.3, 1} {
		if got := vp.Pressure(vp.V0, eps); got != 0 {
			t.Errorf("P(V0, %v) = %v, want 0", eps, got)
		}
	}
}

func TestPressuresAt(t *testing.T) {
	p := DefaultParameters()
	v := dynamo.State{30, 60, 40, 170, 70, 20}
	dst := make(dynamo.State, NumCompartments)

	p.PressuresAt(dst, v, 0)

	if dst[PulmonaryVeins] != 10 {
		t.Errorf("pulmonary veins = %v, want 10", dst[PulmonaryVeins])
	}
	if math.Abs(dst[SystemicArteries]-100) > 1e-9 {
		t.Errorf("systemic arteries = %v, want 100", dst[SystemicArteries])
	}
	if dst[SystemicVeins] != 10 {
		t.Errorf("systemic veins = %v, want 10", dst[SystemicVeins])
	}
	if dst[PulmonaryArteries] != 10 {
		t.Errorf("pulmonary arteries = %v, want 10", dst[PulmonaryArteries])
	}
	if dst[LeftVentricle] != p.Left.EDP(60) {
		t.Errorf("left ventricle = %v, want %v", dst[LeftVentricle], p.Left.EDP(60))
	}
	if dst[RightVentricle] != p.Right.EDP(70) {
		t.Errorf("right ventricle = %v, want %v", dst[RightVentricle], p.Right.EDP(70))
	}
}

func TestModelPressuresFollowActivation(t *testing.T) {
	m, err := NewModel(DefaultParameters())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	v := dynamo.State{30, 60, 40, 170, 70, 20}
	dst := make(dynamo.State, NumCompartments)

	m.Pressures(dst, v, m.TimeToEndSystole())
	if want := m.Parameters().Left.ESP(60); math.Abs(dst[LeftVentricle]-want) > 1e-9 {
		t.Errorf("LV at end systole = %v, want %v", dst[LeftVentricle], want)
	}

	m.Pressures(dst, v, 0)
	if want := m.Parameters().Left.EDP(60); dst[LeftVentricle] != want {
		t.Errorf("LV at cycle start = %v, want %v", dst[LeftVentricle], want)
	}
}
