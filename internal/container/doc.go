// SPDX-License-Identifier: MPL-2.0

// Package container provides a unified abstraction over container engine
// CLIs (Docker/Podman).
//
// The Engine interface covers the operations the build/verify pipeline
// needs: Build, Run, ImageExists, RemoveImage, and Version. Both
// implementations embed BaseCLIEngine, which owns argument construction and
// command execution; the exec function is injectable so tests can run
// against a recorded mock instead of a real daemon.
//
// Engine selection uses NewEngine(EngineType) with automatic fallback when
// the preferred engine is unavailable, or AutoDetectEngine() for
// preference-less detection (Docker is tried first; CI runners almost
// always ship it).
package container
