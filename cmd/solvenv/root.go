// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"solvenv-cli/internal/config"
	"solvenv-cli/internal/container"
	"solvenv-cli/internal/issue"
	"solvenv-cli/pkg/manifest"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// manifestFile allows specifying a custom manifest file
	manifestFile string
	// engineName forces a specific container engine
	engineName string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "solvenv",
		Short: "Reproducible solver runtime images for energy scheduling",
		Long: TitleStyle.Render("solvenv") + SubtitleStyle.Render(" - reproducible solver runtime images") + `

solvenv builds container images that bundle an optimization library
(pycity_scheduling) with mathematical solver binaries (SCIP, Gurobi)
so every scheduling run happens in the same pinned environment.

The image recipe lives in a 'solvenv.cue' manifest: base image pin,
library source, solver binaries, and the smoke checks that prove the
image works before anyone uses it.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'solvenv init' to scaffold a manifest
  2. Drop your solver binaries into ./solvers
  3. Run 'solvenv up' to build and verify the image

` + SubtitleStyle.Render("Examples:") + `
  solvenv build             Build the image without verifying
  solvenv verify            Run the smoke checks
  solvenv up                Build and verify in one go
  solvenv config show       Show current configuration`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/solvenv/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&manifestFile, "manifest", "m", "", "manifest file (default is ./solvenv.cue)")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "container engine to use (docker or podman)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig reads the effective configuration, honoring the --config flag.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// loadManifest reads the manifest named by --manifest, falling back to
// solvenv.cue in the working directory.
func loadManifest() (*manifest.Manifest, error) {
	path := manifestFile
	if path == "" {
		path = manifest.DefaultFileName
	}
	return manifest.Load(path)
}

// selectEngine picks the container engine: the --engine flag wins, then the
// configured engine, then auto-detection.
func selectEngine(cfg *config.Config) (container.Engine, error) {
	name := engineName
	if name == "" {
		name = cfg.ContainerEngine
	}

	var (
		engine container.Engine
		err    error
	)
	if name == "" {
		engine, err = container.AutoDetectEngine()
	} else {
		engine, err = container.NewEngine(container.EngineType(name))
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("select container engine").
			WithSuggestion("Install docker or podman and make sure the daemon is running").
			WithSuggestion("Set container_engine in config.cue or pass --engine").
			Wrap(err).
			Build()
	}
	return engine, nil
}

// newLogger builds the stage logger for pipeline runs.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.New(os.Stderr)
	if cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
