package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/sim"
)

const (
	DefaultHeartRate      = 80.0
	DefaultStressedVolume = 250.0
	DefaultSVR            = 2.5
	DefaultLVEes          = 7.0
	DefaultLVA            = 0.1
	DefaultRVA            = 0.09
	DefaultB              = 0.35
	DefaultV0             = 5.0
	DefaultSamples        = 5000
	DefaultTolerance      = 0.1
	DefaultMaxIterations  = 100
	DefaultIntegrator     = "rk4"
)

type Config struct {
	Name           string            `yaml:"name,omitempty"`
	HeartRate      float64           `yaml:"heart_rate"`
	StressedVolume float64           `yaml:"stressed_volume"`
	Capacitances   CapacitanceConfig `yaml:"capacitances"`
	Resistances    ResistanceConfig  `yaml:"resistances"`
	LeftVentricle  VentricleConfig   `yaml:"left_ventricle"`
	RightVentricle VentricleConfig   `yaml:"right_ventricle"`
	Solver         SolverConfig      `yaml:"solver"`
}

type CapacitanceConfig struct {
	PulmonaryVenous   float64 `yaml:"pulmonary_venous"`
	SystemicArterial  float64 `yaml:"systemic_arterial"`
	SystemicVenous    float64 `yaml:"systemic_venous"`
	PulmonaryArterial float64 `yaml:"pulmonary_arterial"`
}

type ResistanceConfig struct {
	PulmonaryVenous   float64 `yaml:"pulmonary_venous"`
	AorticValve       float64 `yaml:"aortic_valve"`
	SystemicArterial  float64 `yaml:"systemic_arterial"`
	SystemicVenous    float64 `yaml:"systemic_venous"`
	PulmonicValve     float64 `yaml:"pulmonic_valve"`
	PulmonaryArterial float64 `yaml:"pulmonary_arterial"`
}

// VentricleConfig carries the pressure-volume constants. Ees is read for the
// left ventricle only; the right ventricle's is derived from it.
type VentricleConfig struct {
	A   float64 `yaml:"a"`
	B   float64 `yaml:"b"`
	Ees float64 `yaml:"ees,omitempty"`
	V0  float64 `yaml:"v0"`
}

type SolverConfig struct {
	Samples       int     `yaml:"samples"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Integrator    string  `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:           "default",
		HeartRate:      DefaultHeartRate,
		StressedVolume: DefaultStressedVolume,
		Capacitances: CapacitanceConfig{
			PulmonaryVenous:   3,
			SystemicArterial:  0.40,
			SystemicVenous:    17,
			PulmonaryArterial: 2,
		},
		Resistances: ResistanceConfig{
			PulmonaryVenous:   0.015,
			AorticValve:       0.2,
			SystemicArterial:  DefaultSVR,
			SystemicVenous:    0.015,
			PulmonicValve:     0.06,
			PulmonaryArterial: 0.30,
		},
		LeftVentricle:  VentricleConfig{A: DefaultLVA, B: DefaultB, Ees: DefaultLVEes, V0: DefaultV0},
		RightVentricle: VentricleConfig{A: DefaultRVA, B: DefaultB, V0: DefaultV0},
		Solver: SolverConfig{
			Samples:       DefaultSamples,
			Tolerance:     DefaultTolerance,
			MaxIterations: DefaultMaxIterations,
			Integrator:    DefaultIntegrator,
		},
	}
}

// Load reads a YAML file on top of the defaults, so partial files are valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	return ParseInto(DefaultConfig(), data)
}

// LoadOver reads a YAML file on top of base, typically a preset.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInto(base, data)
}

// ParseInto unmarshals data onto a copy of base; fields absent from data keep base values.
func ParseInto(base *Config, data []byte) (*Config, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy; Config holds only values.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Parameters maps the document onto the model parameter set.
func (c *Config) Parameters() circulation.Parameters {
	return circulation.Parameters{
		HeartRate:      c.HeartRate,
		StressedVolume: c.StressedVolume,
		Capacitances: circulation.Capacitances{
			PulmonaryVenous:   c.Capacitances.PulmonaryVenous,
			SystemicArterial:  c.Capacitances.SystemicArterial,
			SystemicVenous:    c.Capacitances.SystemicVenous,
			PulmonaryArterial: c.Capacitances.PulmonaryArterial,
		},
		Resistances: circulation.Resistances{
			PulmonaryVenous:   c.Resistances.PulmonaryVenous,
			AorticValve:       c.Resistances.AorticValve,
			SystemicArterial:  c.Resistances.SystemicArterial,
			SystemicVenous:    c.Resistances.SystemicVenous,
			PulmonicValve:     c.Resistances.PulmonicValve,
			PulmonaryArterial: c.Resistances.PulmonaryArterial,
		},
		Left: circulation.Ventricle{
			A:   c.LeftVentricle.A,
			B:   c.LeftVentricle.B,
			Ees: c.LeftVentricle.Ees,
			V0:  c.LeftVentricle.V0,
		},
		Right: circulation.Ventricle{
			A:   c.RightVentricle.A,
			B:   c.RightVentricle.B,
			Ees: c.LeftVentricle.Ees * circulation.RightElastanceRatio,
			V0:  c.RightVentricle.V0,
		},
	}
}

func (c *Config) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Samples = c.Solver.Samples
	cfg.Tolerance = c.Solver.Tolerance
	cfg.MaxIterations = c.Solver.MaxIterations
	return cfg
}

// Validate checks both the model parameters and the solver settings.
func (c *Config) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	return c.SimConfig().Validate()
}
