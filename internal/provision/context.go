// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateInputs checks every externally-supplied build input before any
// engine call: the resolved library tree, the solver directory, and each
// required solver binary inside it. A missing artifact is a host problem
// the container daemon cannot fix, so validation failing here means the
// daemon is never contacted.
func (c *Config) ValidateInputs() error {
	if info, err := os.Stat(c.LibraryDir); err != nil || !info.IsDir() {
		return &MissingArtifactError{Kind: "library source", Path: c.LibraryDir}
	}

	solverDir := c.Manifest.SolverDir
	if info, err := os.Stat(solverDir); err != nil || !info.IsDir() {
		return &MissingArtifactError{Kind: "solver directory", Path: solverDir}
	}
	if entries, err := os.ReadDir(solverDir); err != nil || len(entries) == 0 {
		return &MissingArtifactError{Kind: "solver directory", Path: solverDir}
	}

	for i := range c.Manifest.Solvers {
		solver := &c.Manifest.Solvers[i]
		binPath := filepath.Join(solverDir, solver.BinaryName())
		if _, err := os.Stat(binPath); err != nil {
			if solver.IsRequired() {
				return &MissingArtifactError{Kind: "solver binary", Path: binPath}
			}
			continue
		}
	}

	return nil
}

// prepareBuildContext stages the library copy, solver directory, and
// generated Dockerfile into a fresh temporary directory and returns its
// path. The caller removes it after the build.
//
// The context lives in a visible directory: Docker installed via Snap
// cannot read hidden directories or /tmp.
func (c *Config) prepareBuildContext() (string, error) {
	parent := c.ContextParent
	if parent == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		parent = filepath.Join(home, "solvenv-build")
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("failed to create build context parent: %w", err)
	}

	contextDir, err := os.MkdirTemp(parent, "context-*")
	if err != nil {
		return "", fmt.Errorf("failed to create build context: %w", err)
	}

	cleanup := func(cause error) (string, error) {
		_ = os.RemoveAll(contextDir)
		return "", cause
	}

	if err := CopyDir(c.LibraryDir, filepath.Join(contextDir, contextLibraryDir)); err != nil {
		return cleanup(fmt.Errorf("failed to stage library source: %w", err))
	}

	stagedSolvers := filepath.Join(contextDir, contextSolverDir)
	if err := CopyDir(c.Manifest.SolverDir, stagedSolvers); err != nil {
		return cleanup(fmt.Errorf("failed to stage solver directory: %w", err))
	}
	// Archives often strip modes on extraction; the staged binaries must be
	// 0755 so COPY carries a usable mode even before the image-level chmod.
	if err := markExecutable(stagedSolvers); err != nil {
		return cleanup(fmt.Errorf("failed to mark solvers executable: %w", err))
	}

	dockerfile := generateDockerfile(c.Manifest)
	if err := os.WriteFile(filepath.Join(contextDir, dockerfileName), []byte(dockerfile), 0o644); err != nil {
		return cleanup(fmt.Errorf("failed to write Dockerfile: %w", err))
	}

	return contextDir, nil
}

// markExecutable sets 0755 on every regular file under dir.
func markExecutable(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		return os.Chmod(path, 0o755)
	})
}
