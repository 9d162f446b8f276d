// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solvenv-cli/internal/pipeline"
)

var (
	upForceRebuild bool

	// upCmd runs the full pipeline: resolve, build, verify.
	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Build and verify the solver runtime image",
		Long: `Build the solver runtime image and run its smoke checks.

This is the full delivery pipeline: resolve the library source, build
the image (or reuse the cached one), then prove it works by querying
each solver's version, importing the library, and running the example
script inside a container. The first failing stage aborts the run.`,
		RunE: runUp,
	}
)

func init() {
	upCmd.Flags().BoolVar(&upForceRebuild, "force-rebuild", false, "rebuild even when a cached image matches")
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	m, err := loadManifest()
	if err != nil {
		return err
	}

	engine, err := selectEngine(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(engine, cfg,
		pipeline.WithLogger(newLogger(cfg)),
		pipeline.WithOutput(os.Stderr),
	)

	outcome, err := p.Run(cmd.Context(), pipeline.Request{
		Manifest:     m,
		ForceRebuild: upForceRebuild,
	})
	if outcome != nil && outcome.Report != nil {
		fmt.Print(outcome.Report.Render())
	}
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Printf("%s Image %s is built and verified\n", SuccessStyle.Render("✓"), outcome.ImageTag)
	return nil
}
