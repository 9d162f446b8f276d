// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"path"
)

const (
	// DefaultBinDir is where solver binaries land inside the image.
	DefaultBinDir = "/opt/solvers/bin"

	// DefaultFileName is the manifest file looked up in the working directory.
	DefaultFileName = "solvenv.cue"
)

type (
	// Manifest describes one solver-enabled runtime image.
	Manifest struct {
		// Base is the pinned OS + language runtime layer.
		Base BaseSpec `json:"base"`

		// Library is the scheduling library installed from a local source copy.
		Library LibrarySpec `json:"library"`

		// SolverDir is the host directory holding the solver executables.
		// The directory is treated as opaque: everything in it is copied
		// into the image (licenses, shared objects, the binaries themselves).
		SolverDir string `json:"solverDir"`

		// Solvers lists the executables expected inside SolverDir.
		Solvers []SolverSpec `json:"solvers"`

		// Env controls how the solver directory is composed into the image
		// environment.
		Env EnvSpec `json:"env,omitempty"`

		// Example is the representative script run during verification.
		Example ExampleSpec `json:"example,omitempty"`

		// Checks are additional smoke checks beyond the generated ones.
		Checks []CheckSpec `json:"checks,omitempty"`

		// Hooks are optional host-side shell snippets around the pipeline.
		Hooks HooksSpec `json:"hooks,omitempty"`

		// FilePath is where this manifest was loaded from (set by Load).
		FilePath string `json:"-"`
	}

	// BaseSpec pins the image's OS and language runtime.
	BaseSpec struct {
		// Image is the base image reference, including the version pin
		// (e.g. "python:3.10-slim-bookworm"). Rebuilding against a moved
		// tag breaks reproducibility, so digests are allowed too.
		Image string `json:"image"`

		// AptPackages are extra distro packages installed in the base layer.
		AptPackages []string `json:"aptPackages,omitempty"`
	}

	// LibrarySpec identifies the library source tree.
	//
	// Exactly one of Path or Repo must be set. Path points at a local copy
	// (the submodule layout of the original repository); Repo + Ref pin a
	// git source that is checked out into the cache before building.
	LibrarySpec struct {
		// Name is the importable Python package name.
		Name string `json:"name"`

		// Path is a local source directory.
		Path string `json:"path,omitempty"`

		// Repo is a git URL cloned when Path is not set.
		Repo string `json:"repo,omitempty"`

		// Ref pins the revision to check out: a full commit hash, tag, or
		// branch name. Required when Repo is set.
		Ref string `json:"ref,omitempty"`

		// InstallDir is where the source copy lands inside the image.
		// Defaults to /opt/<name>.
		InstallDir string `json:"installDir,omitempty"`
	}

	// EnvSpec controls environment composition inside the image.
	EnvSpec struct {
		// BinDir is the in-image solver directory prepended to PATH.
		// Defaults to DefaultBinDir.
		BinDir string `json:"binDir,omitempty"`

		// Vars are extra environment variables baked into the image.
		Vars map[string]string `json:"vars,omitempty"`
	}

	// ExampleSpec names the example script used as the end-to-end check.
	ExampleSpec struct {
		// Script is a path relative to the library's install dir
		// (e.g. "examples/example_12_objective_price.py").
		Script string `json:"script,omitempty"`
	}

	// CheckSpec is a user-defined smoke check run inside the built image.
	CheckSpec struct {
		Name    string   `json:"name"`
		Command []string `json:"command"`
	}

	// HooksSpec holds host-side shell snippets. Both are optional.
	HooksSpec struct {
		// PreBuild runs on the host before input validation and build.
		PreBuild string `json:"preBuild,omitempty"`

		// PostVerify runs on the host after all checks pass.
		PostVerify string `json:"postVerify,omitempty"`
	}
)

// ApplyDefaults fills in the derivable fields left empty by the user.
func (m *Manifest) ApplyDefaults() {
	if m.Env.BinDir == "" {
		m.Env.BinDir = DefaultBinDir
	}
	if m.Library.InstallDir == "" && m.Library.Name != "" {
		m.Library.InstallDir = path.Join("/opt", m.Library.Name)
	}
	for i := range m.Solvers {
		m.Solvers[i].applyDefaults()
	}
}

// DefaultManifest returns the manifest solvenv was built around: the
// pycity_scheduling library with the SCIP and Gurobi solvers.
func DefaultManifest() *Manifest {
	m := &Manifest{
		Base: BaseSpec{
			Image:       "python:3.10-slim-bookworm",
			AptPackages: []string{"build-essential"},
		},
		Library: LibrarySpec{
			Name: "pycity_scheduling",
			Path: "./pycity_scheduling",
		},
		SolverDir: "./solvers",
		Solvers: []SolverSpec{
			{Name: "scip"},
			{Name: "gurobi_cl", Required: boolPtr(false)},
		},
		Example: ExampleSpec{
			Script: "examples/example_12_objective_price.py",
		},
	}
	m.ApplyDefaults()
	return m
}

func boolPtr(b bool) *bool { return &b }
