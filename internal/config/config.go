package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/bethesim/internal/physics"
	"github.com/san-kum/bethesim/internal/sweep"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutput  = "output"
	DefaultPoints  = 1000
	DefaultStepMeV = 10.0
	DefaultFormat  = "png"
	DefaultWidth   = 1000
	DefaultHeight  = 600
)

type Config struct {
	Output   string        `yaml:"output" toml:"output"`
	Points   int           `yaml:"points" toml:"points"`
	StepMeV  float64       `yaml:"step_mev" toml:"step_mev"`
	Variants []string      `yaml:"variants" toml:"variants"`
	Density  DensityConfig `yaml:"density" toml:"density"`
	Plot     PlotConfig    `yaml:"plot" toml:"plot"`
	Verbose  bool          `yaml:"verbose" toml:"verbose"`
}

type DensityConfig struct {
	A  float64 `yaml:"a" toml:"a"`
	X0 float64 `yaml:"x0" toml:"x0"`
	X1 float64 `yaml:"x1" toml:"x1"`
	C  float64 `yaml:"c_param" toml:"c_param"`
	M  float64 `yaml:"m_param" toml:"m_param"`
}

type PlotConfig struct {
	Format   string `yaml:"format" toml:"format"`
	Width    int    `yaml:"width" toml:"width"`
	Height   int    `yaml:"height" toml:"height"`
	Disabled bool   `yaml:"disabled" toml:"disabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Output:   DefaultOutput,
		Points:   DefaultPoints,
		StepMeV:  DefaultStepMeV,
		Variants: variantNames(physics.Variants()),
		Density:  DensityFromParameters(physics.DefaultParameters()),
		Plot: PlotConfig{
			Format: DefaultFormat,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a YAML or TOML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Parameters() physics.CorrectionParameters {
	return physics.CorrectionParameters{
		A:  c.Density.A,
		X0: c.Density.X0,
		X1: c.Density.X1,
		M:  c.Density.M,
		C:  c.Density.C,
	}
}

func (c *Config) SweepConfig() sweep.Config {
	sc := sweep.DefaultConfig()
	sc.Points = c.Points
	sc.StepMeV = c.StepMeV
	return sc
}

// GetVariants parses Variants; an empty list selects all four.
func (c *Config) GetVariants() ([]physics.Variant, error) {
	if len(c.Variants) == 0 {
		return physics.Variants(), nil
	}
	out := make([]physics.Variant, 0, len(c.Variants))
	for _, name := range c.Variants {
		v, err := physics.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Config) Validate() error {
	if err := c.SweepConfig().Validate(); err != nil {
		return err
	}
	switch c.Plot.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("unknown plot format: %s", c.Plot.Format)
	}
	if err := requirePositive("plot width", c.Plot.Width); err != nil {
		return err
	}
	if err := requirePositive("plot height", c.Plot.Height); err != nil {
		return err
	}
	_, err := c.GetVariants()
	return err
}

type Number interface {
	constraints.Float | constraints.Integer
}

func requirePositive[T Number](name string, v T) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, v)
	}
	return nil
}

func DensityFromParameters(p physics.CorrectionParameters) DensityConfig {
	return DensityConfig{A: p.A, X0: p.X0, X1: p.X1, C: p.C, M: p.M}
}

func variantNames(vs []physics.Variant) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.String()
	}
	return names
}
