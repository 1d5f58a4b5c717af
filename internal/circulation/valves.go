package circulation

import "github.com/san-kum/circsim/internal/dynamo"

// Valve names one of the four heart valves.
type Valve int

const (
	Mitral Valve = iota
	Aortic
	Tricuspid
	Pulmonic
)

const NumValves = 4

var valveNames = [...]string{"mitral", "aortic", "tricuspid", "pulmonic"}

func (v Valve) String() string {
	if v < 0 || int(v) >= len(valveNames) {
		return "unknown"
	}
	return valveNames[v]
}

// Valves is the open (true) / closed state of every valve at one sample.
type Valves [NumValves]bool

// ValveStates derives valve states from one pressure sample. Ties are closed.
func ValveStates(p dynamo.State) Valves {
	return Valves{
		Mitral:    p[PulmonaryVeins] > p[LeftVentricle],
		Aortic:    p[LeftVentricle] > p[SystemicArteries],
		Tricuspid: p[SystemicVeins] > p[RightVentricle],
		Pulmonic:  p[RightVentricle] > p[PulmonaryArteries],
	}
}

// ExtractValves maps a pressure series to its valve series.
func ExtractValves(pressures []dynamo.State) []Valves {
	out := make([]Valves, len(pressures))
	for i, p := range pressures {
		out[i] = ValveStates(p)
	}
	return out
}
