package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/report"
	"github.com/san-kum/circsim/internal/sim"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset or a config file and overrides knobs.
type ScenarioStep struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	Config     string             `yaml:"config"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Build resolves a step into a full configuration.
func (s ScenarioStep) Build() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Name != "" {
		cfg.Name = s.Name
	}
	if s.Integrator != "" {
		cfg.Solver.Integrator = s.Integrator
	}
	for k, v := range s.Params {
		if err := cfg.Set(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Each finished outcome is passed to
// sink, which may record it; a sink error stops the scenario.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger, sink func(*experiment.Outcome) error) ([]*experiment.Outcome, error) {
	results := make([]*experiment.Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "name", cfg.Name)

		out, err := experiment.Run(cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		if sink != nil {
			if err := sink(out); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		results = append(results, out)
	}

	return results, nil
}

// ParameterSweep varies one knob linearly between Min and Max.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	Steps    int
}

type SweepResult struct {
	Value      float64
	Status     sim.Status
	Iterations int
	Indices    report.Indices
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.Steps)
	}
	if _, err := sweep.Base.Get(sweep.Param); err != nil {
		return nil, err
	}

	step := 0.0
	if sweep.Steps > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	}

	results := make([]SweepResult, 0, sweep.Steps)
	for i := 0; i < sweep.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		value := sweep.Min + float64(i)*step
		if i == sweep.Steps-1 && sweep.Steps > 1 {
			value = sweep.Max
		}

		cfg := sweep.Base.Clone()
		if err := cfg.Set(sweep.Param, value); err != nil {
			return results, err
		}

		out, err := experiment.Run(cfg, logger)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}

		results = append(results, SweepResult{
			Value:      value,
			Status:     out.Result.Status,
			Iterations: out.Result.Iterations,
			Indices:    out.Indices,
		})
		logger.Debug("sweep point", "param", sweep.Param, "value", value, "status", out.Result.Status.String())
	}

	return results, nil
}
