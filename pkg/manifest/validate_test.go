// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"testing"
)

func baseValid() *Manifest {
	m := &Manifest{
		Base:      BaseSpec{Image: "python:3.10-slim"},
		Library:   LibrarySpec{Name: "pycity_scheduling", Path: "./pycity_scheduling"},
		SolverDir: "./solvers",
		Solvers:   []SolverSpec{{Name: "scip"}},
	}
	m.ApplyDefaults()
	return m
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Manifest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Manifest) {}, wantErr: false},
		{name: "missing base image", mutate: func(m *Manifest) { m.Base.Image = "" }, wantErr: true},
		{name: "missing library name", mutate: func(m *Manifest) { m.Library.Name = "" }, wantErr: true},
		{name: "path and repo both set", mutate: func(m *Manifest) { m.Library.Repo = "https://x/y.git"; m.Library.Ref = "v1" }, wantErr: true},
		{name: "neither path nor repo", mutate: func(m *Manifest) { m.Library.Path = "" }, wantErr: true},
		{name: "repo without ref", mutate: func(m *Manifest) { m.Library.Path = ""; m.Library.Repo = "https://x/y.git" }, wantErr: true},
		{name: "repo with ref", mutate: func(m *Manifest) { m.Library.Path = ""; m.Library.Repo = "https://x/y.git"; m.Library.Ref = "abc123" }, wantErr: false},
		{name: "missing solver dir", mutate: func(m *Manifest) { m.SolverDir = "" }, wantErr: true},
		{name: "no solvers", mutate: func(m *Manifest) { m.Solvers = nil }, wantErr: true},
		{name: "duplicate solver", mutate: func(m *Manifest) { m.Solvers = append(m.Solvers, SolverSpec{Name: "scip"}) }, wantErr: true},
		{name: "solver name with slash", mutate: func(m *Manifest) { m.Solvers[0].Name = "bin/scip" }, wantErr: true},
		{name: "check without command", mutate: func(m *Manifest) { m.Checks = []CheckSpec{{Name: "x"}} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := baseValid()
			tt.mutate(m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("Validate() error does not wrap ErrInvalidManifest: %v", err)
			}
		})
	}
}

func TestSolverName_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   SolverName
		wantErr bool
	}{
		{name: "simple", value: "scip", wantErr: false},
		{name: "underscore", value: "gurobi_cl", wantErr: false},
		{name: "dots and dashes", value: "cbc-2.10.5", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "path separator", value: "bin/scip", wantErr: true},
		{name: "leading dash", value: "-scip", wantErr: true},
		{name: "spaces", value: "sc ip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("SolverName(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSolverName) {
				t.Errorf("error does not wrap ErrInvalidSolverName")
			}
		})
	}
}

func TestSolverSpec_VersionCommand(t *testing.T) {
	t.Parallel()

	s := SolverSpec{Name: "scip"}
	got := s.VersionCommand()
	if len(got) != 2 || got[0] != "scip" || got[1] != "--version" {
		t.Errorf("VersionCommand() = %v, want [scip --version]", got)
	}

	s = SolverSpec{Name: "gurobi_cl", VersionArgs: []string{"-v"}}
	got = s.VersionCommand()
	if len(got) != 2 || got[1] != "-v" {
		t.Errorf("VersionCommand() = %v, want [gurobi_cl -v]", got)
	}
}

func TestSolverSpec_BinaryName(t *testing.T) {
	t.Parallel()

	s := SolverSpec{Name: "scip"}
	if s.BinaryName() != "scip" {
		t.Errorf("BinaryName() = %q, want scip", s.BinaryName())
	}
	s.Binary = "scip-9.0.0"
	if s.BinaryName() != "scip-9.0.0" {
		t.Errorf("BinaryName() = %q, want scip-9.0.0", s.BinaryName())
	}
}
