// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solvenv-cli/internal/pipeline"
)

var (
	buildForceRebuild bool

	// buildCmd provisions the image without running smoke checks.
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the solver runtime image",
		Long: `Build the solver runtime image described by the manifest.

The image is cached by a content hash over all build inputs: rebuilding
from identical inputs reuses the existing image. Verification does not
run; use 'solvenv up' for the full build-and-verify flow.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().BoolVar(&buildForceRebuild, "force-rebuild", false, "rebuild even when a cached image matches")
}

func runBuild(cmd *cobra.Command, args []string) error {
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
		ForceRebuild: buildForceRebuild,
		SkipVerify:   true,
	})
	if err != nil {
		return err
	}

	if outcome.CacheHit {
		fmt.Printf("%s Reusing cached image %s\n", SuccessStyle.Render("✓"), outcome.ImageTag)
	} else {
		fmt.Printf("%s Built image %s\n", SuccessStyle.Render("✓"), outcome.ImageTag)
	}
	return nil
}
