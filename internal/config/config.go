// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"solvenv-cli/internal/issue"
	"solvenv-cli/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "solvenv"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

type (
	// Config is the application-level configuration. Image contents are
	// described by the manifest, not here.
	Config struct {
		// ContainerEngine selects docker or podman; empty means auto-detect.
		ContainerEngine string `mapstructure:"container_engine"`

		// BuildDir is the parent directory for temporary build contexts.
		// Empty means a visible directory under the user's home (Docker
		// installed via Snap cannot read /tmp or hidden directories).
		BuildDir string `mapstructure:"build_dir"`

		// CacheDir holds pinned library source checkouts.
		CacheDir string `mapstructure:"cache_dir"`

		UI     UIConfig     `mapstructure:"ui"`
		Verify VerifyConfig `mapstructure:"verify"`
	}

	// UIConfig holds output settings.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}

	// VerifyConfig holds smoke-check settings.
	VerifyConfig struct {
		// TimeoutSeconds bounds each individual check.
		TimeoutSeconds int `mapstructure:"timeout_seconds"`

		// FailFast stops at the first failing check, matching CI step
		// semantics. When false all checks run and the report carries
		// every failure.
		FailFast bool `mapstructure:"fail_fast"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cacheDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".cache", AppName)
	}

	return &Config{
		ContainerEngine: "",
		BuildDir:        "",
		CacheDir:        cacheDir,
		UI:              UIConfig{Verbose: false},
		Verify:          VerifyConfig{TimeoutSeconds: 600, FailFast: true},
	}
}

// ConfigDir returns the solvenv configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, Linux uses $XDG_CONFIG_HOME (defaulting
// to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without touching
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("container_engine", defaults.ContainerEngine)
	v.SetDefault("build_dir", defaults.BuildDir)
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("verify.timeout_seconds", defaults.Verify.TimeoutSeconds)
	v.SetDefault("verify.fail_fast", defaults.Verify.FailFast)

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		// An explicit --config flag is used exclusively; a missing file is
		// an error rather than a silent fallback to defaults.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				Build()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the expected schema").
				Wrap(err).
				Build()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(cuePath).
					WithSuggestion("Check that the file contains valid CUE syntax").
					Wrap(err).
					Build()
			}
			resolvedPath = cuePath
		}
		// No config file found: defaults apply, not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. Manual parsing instead of
// cueutil.ParseAndDecode because the result must be a map merged into
// Viper's config (preserving defaults), not a decoded struct.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
