// SPDX-License-Identifier: MPL-2.0

// Package manifest defines the solvenv environment manifest.
//
// A manifest (conventionally "solvenv.cue") describes one solver-enabled
// runtime image: the pinned base image, the scheduling library to install
// from a local source copy, the solver binaries to place on the image's
// search path, and the smoke checks that prove the composed environment is
// usable. Manifests are CUE files validated against an embedded schema
// (manifest_schema.cue) before struct-level validation runs.
//
// The zero-configuration default (DefaultManifest) reproduces the
// pycity_scheduling image: SCIP and Gurobi binaries under /opt/solvers/bin,
// the library installed from ./pycity_scheduling.
package manifest
