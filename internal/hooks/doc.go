// SPDX-License-Identifier: MPL-2.0

// Package hooks runs the manifest's host-side shell snippets.
//
// Hooks execute in an embedded POSIX shell interpreter, so they behave the
// same on every host regardless of the system shell. A hook's environment
// carries the pipeline's context (manifest path, image tag once known) on
// top of the host environment.
package hooks
