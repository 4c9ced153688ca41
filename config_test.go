package evergreen

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeHeight = -1
	cfg.SnowCount = -5
	cfg.Policies.Star = "bouncy"
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	for _, want := range []string{"tree_height", "snow_count", "bouncy"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestValidateRejectsInfinity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChaosRadius = math.Inf(1)
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), "chaos_radius") {
		t.Errorf("infinite chaos_radius: err = %v, want ErrInvalidConfig naming chaos_radius", err)
	}
	if _, err := LoadConfig(writeFile(t, "inf.yaml", "tree_height: .inf\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("tree_height .inf: err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "tree.yaml", `
tree_height: 10
particle_count: 500
seed: 99
policies:
  ornament: linear
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TreeHeight != 10 || cfg.ParticleCount != 500 || cfg.Seed != 99 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Policies.Ornament != "linear" || cfg.Policies.Foliage != "linear" {
		t.Errorf("policies = %+v", cfg.Policies)
	}
	if cfg.TreeRadius != DefaultTreeRadius {
		t.Errorf("TreeRadius = %v, want default %v", cfg.TreeRadius, DefaultTreeRadius)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "tree.toml", `
tree_radius = 4.5
ornament_count = 120
transition_rate = 1.2

[policies]
foliage = "proportional"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TreeRadius != 4.5 || cfg.OrnamentCount != 120 || cfg.TransitionRate != 1.2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Policies.Foliage != "proportional" {
		t.Errorf("Policies.Foliage = %q", cfg.Policies.Foliage)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(writeFile(t, "tree.ini", "x=1")); !errors.Is(err, ErrUnknownConfigFormat) {
		t.Errorf("ini: err = %v, want ErrUnknownConfigFormat", err)
	}
	if _, err := LoadConfig(writeFile(t, "bad.yaml", "tree_height: -3\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative height: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v, want os.ErrNotExist", err)
	}
}

func TestConfigRates(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.rate(PolicyLinear); got != DefaultTransitionRate {
		t.Errorf("linear rate = %v", got)
	}
	if got := cfg.rate(PolicyProportional); got != ProportionalRate {
		t.Errorf("proportional rate = %v, want %v", got, ProportionalRate)
	}
}

func TestStockConfigFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("configs", "tree.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("configs/tree.yaml = %+v, want the defaults", cfg)
	}
}
