// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"solvenv-cli/internal/config"
)

var (
	// configCmd manages solvenv configuration.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage solvenv configuration",
		Long: `Manage solvenv configuration.

Configuration is stored in:
  - Linux: ~/.config/solvenv/config.cue
  - macOS: ~/Library/Application Support/solvenv/config.cue
  - Windows: %APPDATA%\solvenv\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE:  runConfigInit,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	engine := cfg.ContainerEngine
	if engine == "" {
		engine = "(auto-detect)"
	}

	fmt.Println(TitleStyle.Render("Current configuration"))
	fmt.Printf("  container_engine:       %s\n", engine)
	fmt.Printf("  cache_dir:              %s\n", cfg.CacheDir)
	fmt.Printf("  build_dir:              %s\n", orDefault(cfg.BuildDir, "(home directory)"))
	fmt.Printf("  ui.verbose:             %t\n", cfg.UI.Verbose)
	fmt.Printf("  verify.timeout_seconds: %d\n", cfg.Verify.TimeoutSeconds)
	fmt.Printf("  verify.fail_fast:       %t\n", cfg.Verify.FailFast)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "config.cue")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file '%s' already exists", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

const starterConfig = `// solvenv configuration.

// Container engine: "docker", "podman", or "" for auto-detection.
container_engine: ""

ui: verbose: false

verify: {
	// Per-check timeout. The example script solves a full scheduling
	// problem, so leave headroom.
	timeout_seconds: 600
	// Stop at the first failing check, like a CI step.
	fail_fast: true
}
`
