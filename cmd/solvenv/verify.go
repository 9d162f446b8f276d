// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"solvenv-cli/internal/pipeline"
)

var (
	verifyImage string

	// verifyCmd runs the manifest's smoke checks against an image.
	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Run smoke checks against the solver runtime image",
		Long: `Run the manifest's smoke checks against a built image.

Each check runs in a throwaway container: solver version queries, the
library import, the representative example script, and any user-defined
checks. Without --image the image is resolved (and built if needed)
from the manifest first.`,
		RunE: runVerify,
	}
)

func init() {
	verifyCmd.Flags().StringVar(&verifyImage, "image", "", "verify this image tag instead of resolving from the manifest")
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	p := pipeline.New(engine, cfg, pipeline.WithLogger(newLogger(cfg)))

	if verifyImage != "" {
		report, err := p.Verify(cmd.Context(), m, verifyImage)
		if report != nil {
			fmt.Print(report.Render())
		}
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}
		return nil
	}

	outcome, err := p.Run(cmd.Context(), pipeline.Request{Manifest: m})
	if outcome != nil && outcome.Report != nil {
		fmt.Print(outcome.Report.Render())
	}
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}
