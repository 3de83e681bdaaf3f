package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgyoo86/imasgo/internal/fluxsurface"
)

const (
	DefaultUpsample      = 1
	DefaultContourPoints = 101
	DefaultBoundaryTol   = 1e-6
	DefaultMaxBisect     = 100
	DefaultCOCOS         = 11
	DefaultGradTol       = 1e-8
	DefaultGridSize      = 129
	DefaultProfilePoints = 65
)

type Config struct {
	Equilibrium EquilibriumConfig `yaml:"equilibrium"`
	Trace       TraceConfig       `yaml:"trace"`
	Store       StoreConfig       `yaml:"store"`
}

// EquilibriumConfig sizes the built-in analytic sample.
type EquilibriumConfig struct {
	GridSize      int       `yaml:"grid_size"`
	ProfilePoints int       `yaml:"profile_points"`
	Times         []float64 `yaml:"times"`
}

// TraceConfig tunes the flux-surface engine.
type TraceConfig struct {
	Upsample       int     `yaml:"upsample"`
	ContourPoints  int     `yaml:"contour_points"`
	BoundaryRelTol float64 `yaml:"boundary_rel_tol"`
	MaxBisect      int     `yaml:"max_bisect"`
	Squareness     bool    `yaml:"squareness"`
	COCOS          int     `yaml:"cocos"`
	GradTol        float64 `yaml:"grad_tol"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Equilibrium: EquilibriumConfig{
			GridSize:      DefaultGridSize,
			ProfilePoints: DefaultProfilePoints,
			Times:         []float64{0.0},
		},
		Trace: TraceConfig{
			Upsample:       DefaultUpsample,
			ContourPoints:  DefaultContourPoints,
			BoundaryRelTol: DefaultBoundaryTol,
			MaxBisect:      DefaultMaxBisect,
			Squareness:     true,
			COCOS:          DefaultCOCOS,
			GradTol:        DefaultGradTol,
		},
		Store: StoreConfig{Path: "imasgo.db"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Options converts the trace section into engine options.
func (c *Config) Options() fluxsurface.Options {
	return fluxsurface.Options{
		Upsample:       c.Trace.Upsample,
		ContourPoints:  c.Trace.ContourPoints,
		BoundaryRelTol: c.Trace.BoundaryRelTol,
		MaxBisect:      c.Trace.MaxBisect,
		Squareness:     c.Trace.Squareness,
		COCOS:          c.Trace.COCOS,
		GradTol:        c.Trace.GradTol,
	}
}
