package sim

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/circsim/internal/dynamo"
)

// Simulator searches for the periodic orbit of a Model by integrating whole
// cycles, each seeded with the previous cycle's final volumes, until the
// cycle closes within tolerance or the iteration cap is hit.
type Simulator struct {
	model      Model
	integrator dynamo.Integrator
	observers  []Observer
	logger     *slog.Logger
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func New(model Model, integrator dynamo.Integrator, opts ...Option) *Simulator {
	s := &Simulator{
		model:      model,
		integrator: integrator,
		observers:  make([]Observer, 0),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run starts from seed volumes x0. A capped search is not an error: the
// result carries the last cycle with Status == Capped.
func (s *Simulator) Run(x0 dynamo.State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dim := s.model.StateDim()
	if len(x0) != dim {
		return nil, fmt.Errorf("%w: seed has %d values, model has %d", dynamo.ErrDimensionMismatch, len(x0), dim)
	}

	grid := NewTimeGrid(s.model.CycleLength(), cfg.Samples)
	series := newSeries(cfg.Samples, dim)
	last := cfg.Samples - 1
	copy(series.Volumes[last], x0)

	result := &Result{Grid: grid, Series: series, Status: Running}

	for result.Status == Running {
		result.Iterations++
		copy(series.Volumes[0], series.Volumes[last])

		if err := s.integrateCycle(series, grid, result.Iterations, cfg.ValidateState); err != nil {
			return nil, err
		}

		drift := series.Volumes[last].AbsDiff(series.Volumes[0])
		converged := withinTolerance(drift, cfg.Tolerance)
		result.Drift = drift

		s.logger.Info("steady-state iteration",
			slog.Int("iteration", result.Iterations),
			slog.Any("drift", []float64(drift)),
		)
		for _, obs := range s.observers {
			obs.OnIteration(Iteration{Number: result.Iterations, Drift: drift.Clone(), Converged: converged})
		}

		switch {
		case converged:
			result.Status = Converged
		case result.Iterations >= cfg.MaxIterations:
			result.Status = Capped
			s.logger.Warn("steady state not reached",
				slog.Int("iterations", result.Iterations),
				slog.Float64("tolerance", cfg.Tolerance),
				slog.Float64("max_drift", drift.Max()),
			)
		}
	}

	return result, nil
}

func withinTolerance(drift dynamo.State, tol float64) bool {
	for _, d := range drift {
		if !(d < tol) {
			return false
		}
	}
	return true
}
