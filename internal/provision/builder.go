// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"solvenv-cli/internal/container"
)

type (
	// Provisioner builds solver runtime images.
	Provisioner interface {
		// Provision ensures the image described by the config exists,
		// building it if no cached image matches the inputs.
		Provision(ctx context.Context) (*Result, error)
	}

	// Result describes a provisioned image.
	Result struct {
		// ImageTag names the built (or cached) image.
		ImageTag string

		// EnvVars is the environment the image composes.
		EnvVars map[string]string

		// CacheHit reports whether an existing image was reused.
		CacheHit bool
	}

	// ImageBuilder is the default Provisioner. It assembles a build context
	// from the config's inputs and delegates the build to a container engine.
	ImageBuilder struct {
		engine container.Engine
		config *Config
	}
)

// NewImageBuilder creates an ImageBuilder using the given engine and config.
func NewImageBuilder(engine container.Engine, config *Config) *ImageBuilder {
	return &ImageBuilder{engine: engine, config: config}
}

// Provision implements Provisioner.
func (b *ImageBuilder) Provision(ctx context.Context) (*Result, error) {
	if err := b.config.ValidateInputs(); err != nil {
		return nil, err
	}

	cacheKey, err := b.cacheKey()
	if err != nil {
		return nil, fmt.Errorf("failed to compute image cache key: %w", err)
	}
	tag := b.imageTag(cacheKey)

	if !b.config.ForceRebuild {
		exists, err := b.engine.ImageExists(ctx, tag)
		if err == nil && exists {
			return &Result{
				ImageTag: tag,
				EnvVars:  buildEnvVars(b.config.Manifest),
				CacheHit: true,
			}, nil
		}
	}

	contextDir, err := b.config.prepareBuildContext()
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(contextDir) }()

	buildOpts := container.BuildOptions{
		ContextDir: contextDir,
		Dockerfile: dockerfileName,
		Tag:        tag,
		NoCache:    b.config.ForceRebuild,
		Stdout:     b.config.Output,
		Stderr:     b.config.Output,
	}
	if err := b.engine.Build(ctx, buildOpts); err != nil {
		return nil, err
	}

	return &Result{
		ImageTag: tag,
		EnvVars:  buildEnvVars(b.config.Manifest),
		CacheHit: false,
	}, nil
}

// cacheKey hashes every input that shapes the image: the generated
// Dockerfile (which covers the base image pin, apt packages, install dirs,
// and env vars), the library source tree, and the solver directory. Two
// runs over identical inputs produce the same key, so the second run is a
// tag lookup instead of a rebuild.
func (b *ImageBuilder) cacheKey() (string, error) {
	h := sha256.New()

	h.Write([]byte(generateDockerfile(b.config.Manifest)))

	libHash, err := CalculateDirHash(b.config.LibraryDir)
	if err != nil {
		return "", fmt.Errorf("failed to hash library source: %w", err)
	}
	h.Write([]byte(libHash))

	solverHash, err := CalculateDirHash(b.config.Manifest.SolverDir)
	if err != nil {
		return "", fmt.Errorf("failed to hash solver directory: %w", err)
	}
	h.Write([]byte(solverHash))

	return hex.EncodeToString(h.Sum(nil)), nil
}

// imageTag derives the image tag from the cache key.
func (b *ImageBuilder) imageTag(cacheKey string) string {
	tag := fmt.Sprintf("%s:%s", b.config.TagPrefix, cacheKey[:12])
	if b.config.TagSuffix != "" {
		tag += "-" + b.config.TagSuffix
	}
	return tag
}
