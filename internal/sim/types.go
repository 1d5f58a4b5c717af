package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/circsim/internal/dynamo"
)

// Model is the system the solver drives. Derive is evaluated on pressures;
// Pressures recomputes them from volumes at elapsed cycle time t.
type Model interface {
	dynamo.System
	Pressures(dst, v dynamo.State, t float64)
	CycleLength() float64
}

type Status int

const (
	Running Status = iota
	Converged
	Capped
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Capped:
		return "capped"
	}
	return "unknown"
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{Running, Converged, Capped} {
		if st.String() == s {
			return st, nil
		}
	}
	return Running, fmt.Errorf("unknown status: %s", s)
}

// TimeGrid holds the uniformly spaced samples of one cycle, endpoints included.
type TimeGrid struct {
	Times []float64
	Step  float64
}

func NewTimeGrid(cycleLength float64, samples int) TimeGrid {
	step := cycleLength / float64(samples-1)
	times := make([]float64, samples)
	for i := range times {
		times[i] = float64(i) * step
	}
	times[samples-1] = cycleLength
	return TimeGrid{Times: times, Step: times[1] - times[0]}
}

func (g TimeGrid) Len() int { return len(g.Times) }

// Length is the cycle length the grid spans.
func (g TimeGrid) Length() float64 {
	if len(g.Times) == 0 {
		return 0
	}
	return g.Times[len(g.Times)-1]
}

type Config struct {
	Samples       int
	Tolerance     float64
	MaxIterations int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Samples:       5000,
		Tolerance:     0.1,
		MaxIterations: 100,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Samples < 2 {
		return fmt.Errorf("%w: samples must be at least 2, got %d", dynamo.ErrParameterBounds, c.Samples)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return fmt.Errorf("%w: tolerance must be non-negative, got %g", dynamo.ErrParameterBounds, c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", dynamo.ErrParameterBounds, c.MaxIterations)
	}
	return nil
}

// Series is one cycle of volume and pressure samples. Rows share a single
// backing array so the solver can overwrite it cycle after cycle.
type Series struct {
	Volumes   []dynamo.State
	Pressures []dynamo.State
}

func newSeries(samples, dim int) *Series {
	backing := make([]float64, 2*samples*dim)
	s := &Series{
		Volumes:   make([]dynamo.State, samples),
		Pressures: make([]dynamo.State, samples),
	}
	for i := 0; i < samples; i++ {
		v := (2 * i) * dim
		p := v + dim
		s.Volumes[i] = dynamo.State(backing[v : v+dim : v+dim])
		s.Pressures[i] = dynamo.State(backing[p : p+dim : p+dim])
	}
	return s
}

func (s *Series) Len() int { return len(s.Volumes) }

// Column extracts one compartment of the volume or pressure rows.
func Column(rows []dynamo.State, idx int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r[idx]
	}
	return out
}

// Iteration describes one finished outer cycle.
type Iteration struct {
	Number    int
	Drift     dynamo.State
	Converged bool
}

type Observer interface {
	OnIteration(it Iteration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(it Iteration)

func (f ObserverFunc) OnIteration(it Iteration) { f(it) }

type Result struct {
	Grid       TimeGrid
	Series     *Series
	Status     Status
	Iterations int
	Drift      dynamo.State
}

func (r *Result) Converged() bool { return r.Status == Converged }
