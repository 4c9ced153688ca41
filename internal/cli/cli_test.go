package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/evergreen"
)

func writeSmallConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "small.yaml")
	data := "particle_count: 200\nornament_count: 40\nsnow_count: 20\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := NewRootCommand(&logs, &out)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}
	logger.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q, want it to contain %q", buf.String(), "shown")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}
	l := log.New(&bytes.Buffer{})
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestConfigCommandDefaults(t *testing.T) {
	out, _, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"tree_height: 12", "particle_count: 20000", "seed: 2025", "ornament: proportional"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommandSeedOverride(t *testing.T) {
	out, _, err := execute(t, "config", "--seed", "7")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "seed: 7") {
		t.Errorf("seed override missing:\n%s", out)
	}
}

func TestConfigCommandUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := execute(t, "config", "--config", path)
	if !errors.Is(err, evergreen.ErrUnknownConfigFormat) {
		t.Errorf("err = %v, want ErrUnknownConfigFormat", err)
	}
}

func TestSimulateConverges(t *testing.T) {
	out, _, err := execute(t, "simulate", "--config", writeSmallConfig(t), "--frames", "900")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, want := range []string{"target:    FORMED", "foliage:   1.0000 (settled: true)", "star:      1.0000"} {
		if !strings.Contains(out, want) {
			t.Errorf("simulate output missing %q:\n%s", want, out)
		}
	}
}

func TestSimulateRejectsBadTPS(t *testing.T) {
	if _, _, err := execute(t, "simulate", "--tps", "0", "--frames", "1"); err == nil {
		t.Error("expected error for --tps 0")
	}
}

func TestSimulateReport(t *testing.T) {
	cfg := evergreen.DefaultConfig()
	cfg.ParticleCount, cfg.OrnamentCount, cfg.SnowCount = 100, 30, 10
	scene, err := evergreen.NewScene(cfg, evergreen.WithLogger(log.New(&bytes.Buffer{})))
	if err != nil {
		t.Fatal(err)
	}
	r, err := simulate(context.Background(), scene, 60, 1.0/60, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Frames != 60 {
		t.Errorf("Frames = %d, want 60", r.Frames)
	}
	if !(r.OrnamentMin <= r.OrnamentMean && r.OrnamentMean <= r.OrnamentMax) {
		t.Errorf("ornament stats out of order: %+v", r)
	}
	if r.Foliage <= 0 || r.Foliage >= 1 {
		t.Errorf("Foliage = %v after one second, want strictly between 0 and 1", r.Foliage)
	}
}

func TestSimulateStopsOnCancel(t *testing.T) {
	var logs, out bytes.Buffer
	root := NewRootCommand(&logs, &out)
	root.SetArgs([]string{"simulate", "--config", writeSmallConfig(t), "--frames", "100"})
	root.SetOut(&out)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := root.ExecuteContext(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("cancelled simulate wrote a report:\n%s", out.String())
	}
}
