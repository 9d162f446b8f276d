// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"solvenv-cli/internal/config"
	"solvenv-cli/internal/container"
	"solvenv-cli/internal/hooks"
	"solvenv-cli/internal/provision"
	"solvenv-cli/internal/source"
	"solvenv-cli/internal/verify"
	"solvenv-cli/pkg/manifest"
)

type (
	// Pipeline drives the resolve, provision, and verify stages against one
	// container engine.
	Pipeline struct {
		engine container.Engine
		cfg    *config.Config
		logger *log.Logger
		output io.Writer
	}

	// Option is a functional option for configuring a Pipeline.
	Option func(*Pipeline)

	// Request describes one pipeline run.
	Request struct {
		// Manifest is the validated, defaults-applied manifest.
		Manifest *manifest.Manifest

		// ForceRebuild bypasses the image cache.
		ForceRebuild bool

		// SkipVerify stops after the provision stage (the build command).
		SkipVerify bool
	}

	// Outcome is the result of a pipeline run.
	Outcome struct {
		// ImageTag names the provisioned image.
		ImageTag string

		// CacheHit reports whether an existing image was reused.
		CacheHit bool

		// Report holds the smoke-check outcomes. Nil when verification
		// was skipped.
		Report *verify.Report
	}
)

// New creates a Pipeline using the given engine and configuration.
func New(engine container.Engine, cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine: engine,
		cfg:    cfg,
		logger: log.New(io.Discard),
		output: io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithLogger sets the stage logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithOutput directs engine build progress to w.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.output = w }
}

// Run executes the pipeline stages in order, aborting on the first failure.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Outcome, error) {
	m := req.Manifest
	executor := p.hookExecutor(m)

	if m.Hooks.PreBuild != "" {
		p.logger.Info("running pre-build hook")
		if err := executor.Run(ctx, "pre_build", m.Hooks.PreBuild); err != nil {
			return nil, err
		}
	}

	p.logger.Info("resolving library source", "library", m.Library.Name)
	libDir, err := source.Resolve(ctx, m.Library, p.cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	p.logger.Info("provisioning image", "engine", p.engine.Name(), "base", m.Base.Image)
	provisionCfg := provision.NewConfig(m, libDir,
		provision.WithForceRebuild(req.ForceRebuild),
		provision.WithContextParent(p.cfg.BuildDir),
		provision.WithOutput(p.output),
	)
	result, err := provision.NewImageBuilder(p.engine, provisionCfg).Provision(ctx)
	if err != nil {
		return nil, err
	}
	if result.CacheHit {
		p.logger.Info("reusing cached image", "tag", result.ImageTag)
	} else {
		p.logger.Info("image built", "tag", result.ImageTag)
	}

	outcome := &Outcome{ImageTag: result.ImageTag, CacheHit: result.CacheHit}
	if req.SkipVerify {
		return outcome, nil
	}

	report, err := p.Verify(ctx, m, result.ImageTag)
	outcome.Report = report
	if err != nil {
		return outcome, err
	}

	if m.Hooks.PostVerify != "" {
		p.logger.Info("running post-verify hook")
		executor.Env["SOLVENV_IMAGE"] = result.ImageTag
		if err := executor.Run(ctx, "post_verify", m.Hooks.PostVerify); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

// Verify runs the manifest's smoke checks against an already-built image.
func (p *Pipeline) Verify(ctx context.Context, m *manifest.Manifest, imageTag string) (*verify.Report, error) {
	checks := verify.BuildChecks(m)
	p.logger.Info("verifying image", "tag", imageTag, "checks", len(checks))

	runner := verify.NewRunner(p.engine, imageTag,
		verify.WithTimeout(time.Duration(p.cfg.Verify.TimeoutSeconds)*time.Second),
		verify.WithFailFast(p.cfg.Verify.FailFast),
	)
	return runner.Run(ctx, checks)
}

// hookExecutor builds the host-shell executor for the manifest's hooks.
// Hooks run in the manifest's directory so relative paths in scripts match
// relative paths in the manifest.
func (p *Pipeline) hookExecutor(m *manifest.Manifest) *hooks.Executor {
	dir := ""
	if m.FilePath != "" {
		dir = filepath.Dir(m.FilePath)
	}
	return &hooks.Executor{
		Dir:    dir,
		Env:    map[string]string{"SOLVENV_MANIFEST": m.FilePath},
		Stdout: p.output,
		Stderr: p.output,
	}
}
