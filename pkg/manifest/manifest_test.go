// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const validManifest = `
base: image: "python:3.10-slim-bookworm"
library: {
	name: "pycity_scheduling"
	path: "./pycity_scheduling"
}
solverDir: "./solvers"
solvers: [
	{name: "scip"},
	{name: "gurobi_cl", required: false},
]
example: script: "examples/example_12_objective_price.py"
`

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(validManifest), "solvenv.cue")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Base.Image != "python:3.10-slim-bookworm" {
		t.Errorf("Base.Image = %q", m.Base.Image)
	}
	if m.Library.InstallDir != "/opt/pycity_scheduling" {
		t.Errorf("Library.InstallDir = %q, want default /opt/pycity_scheduling", m.Library.InstallDir)
	}
	if m.Env.BinDir != DefaultBinDir {
		t.Errorf("Env.BinDir = %q, want default %q", m.Env.BinDir, DefaultBinDir)
	}
	if len(m.Solvers) != 2 {
		t.Fatalf("len(Solvers) = %d, want 2", len(m.Solvers))
	}
	if !m.Solvers[0].IsRequired() {
		t.Error("scip should default to required")
	}
	if m.Solvers[1].IsRequired() {
		t.Error("gurobi_cl is marked required: false")
	}
}

func TestParse_RejectsUnpinnedBaseImage(t *testing.T) {
	t.Parallel()

	bad := `
base: image: "python"
library: {name: "lib", path: "./lib"}
solverDir: "./solvers"
solvers: [{name: "scip"}]
`
	if _, err := Parse([]byte(bad), "solvenv.cue"); err == nil {
		t.Fatal("Parse() should reject a base image without a version pin")
	}
}

func TestParse_RejectsAbsoluteExampleScript(t *testing.T) {
	t.Parallel()

	bad := `
base: image: "python:3.10-slim"
library: {name: "lib", path: "./lib"}
solverDir: "./solvers"
solvers: [{name: "scip"}]
example: script: "/abs/path.py"
`
	if _, err := Parse([]byte(bad), "solvenv.cue"); err == nil {
		t.Fatal("Parse() should reject absolute example script paths")
	}
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "solvenv.cue")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantLib := filepath.Join(dir, "pycity_scheduling")
	if m.Library.Path != wantLib {
		t.Errorf("Library.Path = %q, want %q", m.Library.Path, wantLib)
	}
	wantSolvers := filepath.Join(dir, "solvers")
	if m.SolverDir != wantSolvers {
		t.Errorf("SolverDir = %q, want %q", m.SolverDir, wantSolvers)
	}
	if m.FilePath != path {
		t.Errorf("FilePath = %q, want %q", m.FilePath, path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.cue")); err == nil {
		t.Fatal("Load() should fail for a missing manifest")
	}
}

func TestDefaultManifest(t *testing.T) {
	t.Parallel()

	m := DefaultManifest()
	if err := m.Validate(); err != nil {
		t.Fatalf("DefaultManifest().Validate() error = %v", err)
	}
	if m.Library.Name != "pycity_scheduling" {
		t.Errorf("Library.Name = %q", m.Library.Name)
	}
	if m.Solvers[0].Name != "scip" {
		t.Errorf("Solvers[0].Name = %q, want scip", m.Solvers[0].Name)
	}
}
