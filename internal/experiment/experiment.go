package experiment

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/report"
	"github.com/san-kum/circsim/internal/sim"
)

// Outcome is a solver result together with its derived views.
type Outcome struct {
	Config  *config.Config
	Params  circulation.Parameters
	Result  *sim.Result
	Valves  []circulation.Valves
	Flows   []dynamo.State
	Indices report.Indices
}

type Experiment struct {
	cfg       *config.Config
	model     *circulation.Model
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the configuration and wires the model, the integrator and
// the solver options.
func (e *Experiment) Setup(registry *Registry, logger *slog.Logger, observers ...sim.Observer) error {
	if err := e.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	model, err := circulation.NewModel(e.cfg.Parameters())
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(e.cfg.Solver.Integrator)
	if err != nil {
		return err
	}
	if logger == nil {
		logger = slog.Default()
	}

	e.model = model
	e.simulator = sim.New(model, integ, sim.WithLogger(logger))
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}
	return nil
}

func (e *Experiment) Run() (*Outcome, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	result, err := e.simulator.Run(e.model.SeedVolumes(), e.cfg.SimConfig())
	if err != nil {
		return nil, err
	}

	params := e.model.Parameters()
	indices, valves := report.FromResult(result)
	return &Outcome{
		Config:  e.cfg,
		Params:  params,
		Result:  result,
		Valves:  valves,
		Flows:   circulation.ComputeFlows(result.Series.Pressures, params.Resistances),
		Indices: indices,
	}, nil
}

// Run is Setup followed by Run with the default registry.
func Run(cfg *config.Config, logger *slog.Logger, observers ...sim.Observer) (*Outcome, error) {
	e := New(cfg)
	if err := e.Setup(NewRegistry(), logger, observers...); err != nil {
		return nil, err
	}
	return e.Run()
}
