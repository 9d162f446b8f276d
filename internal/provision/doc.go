// SPDX-License-Identifier: MPL-2.0

// Package provision handles solver runtime image builds.
//
// Given a manifest, a resolved library source directory, and a directory of
// solver binaries, the ImageBuilder assembles a temporary build context
// (library copy, solver copy, generated Dockerfile) and asks the container
// engine to build it. Images are cached by a content hash over all build
// inputs, so rebuilding from identical inputs is a tag lookup instead of a
// rebuild:
//
//	builder := provision.NewImageBuilder(engine, cfg)
//	result, err := builder.Provision(ctx)
//	// result.ImageTag names the built (or cached) image
//
// Input validation is strictly ordered before any engine call: a missing
// library tree or missing required solver binary fails the build without
// touching the container daemon.
package provision
