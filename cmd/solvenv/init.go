// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"solvenv-cli/pkg/manifest"
)

var (
	initForce bool

	// initCmd scaffolds a new manifest.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new solvenv.cue manifest in the current directory",
		Long: `Create a new solvenv.cue manifest in the current directory.

The generated manifest describes the default setup: the pycity_scheduling
library from a local source copy, the SCIP solver (required), and the
Gurobi command-line solver (optional).`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing manifest")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := manifest.DefaultFileName
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(starterManifest), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Place the library source at ./pycity_scheduling")
	fmt.Println("  2. Drop solver binaries (scip, optionally gurobi_cl) into ./solvers")
	fmt.Println("  3. Run 'solvenv up' to build and verify the image")
	return nil
}

// starterManifest is the scaffold written by 'solvenv init'. It mirrors
// manifest.DefaultManifest so a freshly scaffolded project builds the same
// image as running with no manifest customization at all.
const starterManifest = `// solvenv manifest: a reproducible solver runtime image.
base: {
	// Pin the base image; a moving tag breaks reproducibility.
	image: "python:3.10-slim-bookworm"
	// Toolchain for the library's native extensions.
	aptPackages: ["build-essential"]
}

library: {
	name: "pycity_scheduling"
	// Local source copy (e.g. a git submodule checkout). Alternatively set
	// repo + ref to pin a git source:
	//   repo: "https://github.com/oth-regensburg/pycity_scheduling.git"
	//   ref:  "v1.2.1"
	path: "./pycity_scheduling"
}

// Host directory holding the solver executables. Everything in it is
// copied into the image and placed on PATH.
solverDir: "./solvers"

solvers: [
	{name: "scip"},
	// Proprietary; builds still succeed when the binary is absent.
	{name: "gurobi_cl", required: false},
]

example: {
	// Representative script proving the library works end to end.
	script: "examples/example_12_objective_price.py"
}
`
