package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phanxgames/evergreen"
)

// report summarizes a headless run.
type report struct {
	Frames         int
	Clock          float64
	Target         evergreen.TreeState
	Foliage        float64
	OrnamentMin    float64
	OrnamentMean   float64
	OrnamentMax    float64
	Star           float64
	StarSpin       float64
	FoliageSettled bool
}

func (r report) write(w io.Writer) {
	fmt.Fprintf(w, "frames:    %d (%.2fs)\n", r.Frames, r.Clock)
	fmt.Fprintf(w, "target:    %s\n", r.Target)
	fmt.Fprintf(w, "foliage:   %.4f (settled: %v)\n", r.Foliage, r.FoliageSettled)
	fmt.Fprintf(w, "ornaments: min %.4f  mean %.4f  max %.4f\n", r.OrnamentMin, r.OrnamentMean, r.OrnamentMax)
	fmt.Fprintf(w, "star:      %.4f (spin %.2f rad)\n", r.Star, r.StarSpin)
}

// simulate steps scene for frames ticks of dt, toggling the target every
// toggleEvery frames when toggleEvery > 0. It stops early with ctx's error
// when ctx is cancelled.
func simulate(ctx context.Context, scene *evergreen.Scene, frames int, dt float64, toggleEvery int) (report, error) {
	for i := 1; i <= frames; i++ {
		if err := ctx.Err(); err != nil {
			return report{}, err
		}
		scene.Step(dt)
		if toggleEvery > 0 && i%toggleEvery == 0 {
			scene.Toggle()
		}
	}
	r := report{
		Frames:         frames,
		Clock:          scene.Clock(),
		Target:         scene.Target(),
		Foliage:        scene.Foliage().Progress(),
		FoliageSettled: scene.Foliage().Integrator().Settled(scene.Target()),
		Star:           scene.Star().Progress(),
		StarSpin:       scene.Star().Spin(),
	}
	vals := scene.Ornaments().Integrator().Values()
	if len(vals) > 0 {
		r.OrnamentMin, r.OrnamentMax = vals[0], vals[0]
		sum := 0.0
		for _, v := range vals {
			r.OrnamentMin = min(r.OrnamentMin, v)
			r.OrnamentMax = max(r.OrnamentMax, v)
			sum += v
		}
		r.OrnamentMean = sum / float64(len(vals))
	}
	return r, nil
}

func newSimulateCmd(out io.Writer) *cobra.Command {
	var (
		flags       sceneFlags
		frames      int
		tps         int
		toggleEvery int
		chaos       bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step the scene headlessly and report progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if frames < 0 {
				return fmt.Errorf("frames must not be negative, got %d", frames)
			}
			if tps <= 0 {
				return fmt.Errorf("tps must be positive, got %d", tps)
			}
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			initial := evergreen.TreeFormed
			if chaos {
				initial = evergreen.TreeChaos
			}
			scene, err := evergreen.NewScene(cfg, evergreen.WithLogger(logger), evergreen.WithInitialTarget(initial))
			if err != nil {
				return err
			}
			logger.Debug("simulating", "frames", frames, "tps", tps, "toggle_every", toggleEvery)
			r, err := simulate(cmd.Context(), scene, frames, 1/float64(tps), toggleEvery)
			if err != nil {
				return err
			}
			r.write(out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&frames, "frames", 600, "number of ticks to run")
	cmd.Flags().IntVar(&tps, "tps", 60, "ticks per simulated second")
	cmd.Flags().IntVar(&toggleEvery, "toggle-every", 0, "toggle the target every N ticks (0 disables)")
	cmd.Flags().BoolVar(&chaos, "chaos", false, "start with the CHAOS target")
	return cmd
}
