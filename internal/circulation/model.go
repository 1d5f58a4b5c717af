package circulation

import (
	"fmt"

	"github.com/san-kum/circsim/internal/dynamo"
)

// Model couples the flow dynamics with the pressure laws. It implements
// dynamo.System over the pressure vector.
type Model struct {
	params Parameters
	tes    float64
}

// NewModel validates p and builds a model around it.
func NewModel(p Parameters) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("circulation parameters: %w", err)
	}
	return &Model{params: p, tes: p.TimeToEndSystole()}, nil
}

func (m *Model) Parameters() Parameters { return m.params }

func (m *Model) StateDim() int { return NumCompartments }

func (m *Model) CycleLength() float64 { return m.params.CycleLength() }

func (m *Model) TimeToEndSystole() float64 { return m.tes }

// Derive evaluates the flow dynamics on the pressure vector p.
func (m *Model) Derive(p dynamo.State, t float64) dynamo.State {
	return m.params.Resistances.Rates(p)
}

// Pressures writes the pressure vector for volumes v with the activation of
// elapsed cycle time t.
func (m *Model) Pressures(dst, v dynamo.State, t float64) {
	m.params.PressuresAt(dst, v, Activation(t, m.tes))
}

// SeedVolumes spreads the stressed blood volume evenly over the compartments.
func (m *Model) SeedVolumes() dynamo.State {
	v := make(dynamo.State, NumCompartments)
	for i := range v {
		v[i] = m.params.StressedVolume / NumCompartments
	}
	return v
}
