// Package cli implements the evergreen command-line interface.
//
// The root command opens the tree window. The simulate command steps a
// scene headlessly and reports progress, and the config command prints the
// effective configuration.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/evergreen"
)

var version = "dev"

// SetVersion sets the version displayed by --version.
func SetVersion(v string) {
	version = v
}

// sceneFlags are shared by every command that builds a scene.
type sceneFlags struct {
	configPath string
	seed       uint64
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML or TOML config file")
	cmd.Flags().Uint64Var(&f.seed, "seed", evergreen.DefaultSeed, "generation seed")
}

// load returns the default config, overlaid by --config and --seed.
func (f *sceneFlags) load(cmd *cobra.Command) (evergreen.Config, error) {
	cfg := evergreen.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = evergreen.LoadConfig(f.configPath); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg, nil
}

// Execute runs the CLI with os.Args and returns the first command error.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr, os.Stdout).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Logs go to logOut, command output
// (config dumps, simulation reports) to out.
func NewRootCommand(logOut, out io.Writer) *cobra.Command {
	var (
		debug bool
		flags sceneFlags
		win   struct {
			script      string
			screenshots string
			width       int
			height      int
			fps         bool
		}
	)

	root := &cobra.Command{
		Use:          "evergreen",
		Short:        "Evergreen animates a particle holiday tree",
		Long:         `Evergreen renders a tree of foliage particles, ornaments and a star that scatter into chaos and reassemble on demand.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if debug {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			scene, err := evergreen.NewScene(cfg, evergreen.WithLogger(logger))
			if err != nil {
				return err
			}
			if win.screenshots != "" {
				scene.ScreenshotDir = win.screenshots
			}
			if win.script != "" {
				data, err := os.ReadFile(win.script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := evergreen.LoadTestScript(data)
				if err != nil {
					return err
				}
				scene.SetTestRunner(runner)
			}
			logger.Info("opening window", "seed", cfg.Seed, "particles", cfg.ParticleCount)
			return evergreen.Run(scene, evergreen.RunConfig{
				Context: cmd.Context(),
				Width:   win.width,
				Height:  win.height,
				ShowFPS: win.fps,
				Debug:   debug,
			})
		},
	}

	root.PersistentFlags().BoolVarP(&debug, "debug", "v", false, "enable debug logging and frame statistics")
	flags.register(root)
	root.Flags().StringVar(&win.script, "script", "", "YAML test script to run")
	root.Flags().StringVar(&win.screenshots, "screenshots", "", "screenshot output directory")
	root.Flags().IntVar(&win.width, "width", 1280, "window width")
	root.Flags().IntVar(&win.height, "height", 720, "window height")
	root.Flags().BoolVar(&win.fps, "fps", false, "show the FPS widget")

	root.AddCommand(newSimulateCmd(out))
	root.AddCommand(newConfigCmd(out))
	return root
}
