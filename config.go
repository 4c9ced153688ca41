package evergreen

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownConfigFormat is returned by LoadConfig for unsupported file extensions.
	ErrUnknownConfigFormat = errors.New("unknown config format")
)

// Default scene constants.
const (
	DefaultTreeHeight     = 12
	DefaultTreeRadius     = 5
	DefaultParticleCount  = 20000
	DefaultOrnamentCount  = 400
	DefaultSnowCount      = 1500
	DefaultChaosRadius    = 25
	DefaultTransitionRate = 0.8
	DefaultSeed           = 2025
)

// ProportionalRate is the base rate of proportional populations. At 1.25 an
// entity of speed 2 ticking at 10 Hz closes 99% of the distance in 17 ticks
// while a speed 0.5 entity is still under 75%.
const ProportionalRate = 1.25

// Policies picks the integration policy of each animated population.
type Policies struct {
	Foliage  string `yaml:"foliage" toml:"foliage"`
	Ornament string `yaml:"ornament" toml:"ornament"`
	Star     string `yaml:"star" toml:"star"`
}

// Config controls population sizes, shape and animation rates.
type Config struct {
	TreeHeight    float64 `yaml:"tree_height" toml:"tree_height"`
	TreeRadius    float64 `yaml:"tree_radius" toml:"tree_radius"`
	ParticleCount int     `yaml:"particle_count" toml:"particle_count"`
	OrnamentCount int     `yaml:"ornament_count" toml:"ornament_count"`
	SnowCount     int     `yaml:"snow_count" toml:"snow_count"`
	ChaosRadius   float64 `yaml:"chaos_radius" toml:"chaos_radius"`
	// TransitionRate is the progress per second of populations under the
	// linear policy. Proportional populations run at ProportionalRate scaled
	// by each entity's speed.
	TransitionRate float64  `yaml:"transition_rate" toml:"transition_rate"`
	Seed           uint64   `yaml:"seed" toml:"seed"`
	Policies       Policies `yaml:"policies" toml:"policies"`
}

// DefaultConfig returns the stock tree.
func DefaultConfig() Config {
	return Config{
		TreeHeight:     DefaultTreeHeight,
		TreeRadius:     DefaultTreeRadius,
		ParticleCount:  DefaultParticleCount,
		OrnamentCount:  DefaultOrnamentCount,
		SnowCount:      DefaultSnowCount,
		ChaosRadius:    DefaultChaosRadius,
		TransitionRate: DefaultTransitionRate,
		Seed:           DefaultSeed,
		Policies: Policies{
			Foliage:  PolicyLinear.String(),
			Ornament: PolicyProportional.String(),
			Star:     PolicyLinear.String(),
		},
	}
}

// Validate reports every invalid field, joined into one error.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidConfig, name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, name, v))
		}
	}
	positive("tree_height", c.TreeHeight)
	positive("tree_radius", c.TreeRadius)
	positive("chaos_radius", c.ChaosRadius)
	positive("transition_rate", c.TransitionRate)
	nonNegative("particle_count", c.ParticleCount)
	nonNegative("ornament_count", c.OrnamentCount)
	nonNegative("snow_count", c.SnowCount)
	for _, p := range []string{c.Policies.Foliage, c.Policies.Ornament, c.Policies.Star} {
		if _, err := ParsePolicy(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over the
// defaults. Fields missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownConfigFormat, path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// rate returns the integrator rate for a population under policy p.
func (c Config) rate(p Policy) float64 {
	if p == PolicyProportional {
		return ProportionalRate
	}
	return c.TransitionRate
}

func (c Config) policies() (foliage, ornament, star Policy) {
	foliage, _ = ParsePolicy(c.Policies.Foliage)
	ornament, _ = ParsePolicy(c.Policies.Ornament)
	star, _ = ParsePolicy(c.Policies.Star)
	return foliage, ornament, star
}
