// SPDX-License-Identifier: MPL-2.0

// Package source resolves the scheduling library's source tree before a
// build.
//
// The original packaging layout vendors the library as a git submodule next
// to the build recipe. solvenv supports both shapes: a plain local directory
// (library.path) used as-is, or a git repository (library.repo) pinned to an
// exact revision (library.ref) and checked out into the cache directory.
// Either way the build installs from a local copy, never a registry release.
package source
