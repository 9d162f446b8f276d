// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Uses SetConfigDirOverride, so no t.Parallel().
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ContainerEngine != "" {
		t.Errorf("ContainerEngine = %q, want auto-detect default", cfg.ContainerEngine)
	}
	if cfg.Verify.TimeoutSeconds != 600 {
		t.Errorf("Verify.TimeoutSeconds = %d, want 600", cfg.Verify.TimeoutSeconds)
	}
	if !cfg.Verify.FailFast {
		t.Error("Verify.FailFast should default to true")
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	content := `
container_engine: "podman"
verify: timeout_seconds: 120
`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ContainerEngine != "podman" {
		t.Errorf("ContainerEngine = %q, want podman", cfg.ContainerEngine)
	}
	if cfg.Verify.TimeoutSeconds != 120 {
		t.Errorf("Verify.TimeoutSeconds = %d, want 120", cfg.Verify.TimeoutSeconds)
	}
	// Unset fields keep their defaults after the merge.
	if !cfg.Verify.FailFast {
		t.Error("Verify.FailFast should keep its default after partial config")
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.cue")
	if err := os.WriteFile(path, []byte(`container_engine: "lxc"`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("Load() should reject an unknown container engine")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); err == nil {
		t.Fatal("Load() should fail with a canceled context")
	}
}
