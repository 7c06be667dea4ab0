package shaders

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"photon/internal/logging"
	"photon/internal/tactile"
)

// Compiler runs the shader compiler over a batch of files.
type Compiler struct {
	executor    tactile.Executor
	env         []string
	parallelism int
	maxOutput   int64
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithEnvironment sets the compiler process environment.
func WithEnvironment(env []string) Option {
	return func(c *Compiler) { c.env = env }
}

// WithParallelism sets how many compiler processes may run at once.
// Values below 1 mean sequential.
func WithParallelism(n int) Option {
	return func(c *Compiler) { c.parallelism = n }
}

// WithMaxOutputBytes caps the captured stdout and stderr per file.
func WithMaxOutputBytes(n int64) Option {
	return func(c *Compiler) { c.maxOutput = n }
}

// NewCompiler creates a Compiler that runs commands through executor.
func NewCompiler(executor tactile.Executor, opts ...Option) *Compiler {
	c := &Compiler{executor: executor, parallelism: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.parallelism < 1 {
		c.parallelism = 1
	}
	return c
}

// CompileAll compiles every file with compilerPath and returns one outcome
// per file in input order. A failing file never stops the batch.
func (c *Compiler) CompileAll(ctx context.Context, files []ShaderFile, compilerPath string) Report {
	report := newReport(compilerPath, len(files))
	start := time.Now()

	logging.Shaders("Compiling %d shader(s) with %s (run %s, parallelism %d)",
		len(files), compilerPath, report.RunID, c.parallelism)

	// Each worker owns exactly one slot of report.Outcomes.
	var g errgroup.Group
	g.SetLimit(c.parallelism)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			report.Outcomes[i] = c.compileOne(ctx, file, compilerPath)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(start)
	logging.Shaders("Run %s finished: %d succeeded, %d failed in %s",
		report.RunID, report.Succeeded(), report.Failed(), report.Duration)
	return report
}

// compileOne runs `<compiler> <src> -o <src>.spv` and records the outcome.
func (c *Compiler) compileOne(ctx context.Context, file ShaderFile, compilerPath string) CompileOutcome {
	outcome := CompileOutcome{
		Source:     file,
		OutputPath: file.OutputPath(),
		ExitCode:   -1,
	}

	cmd := tactile.Command{
		Binary:           compilerPath,
		Arguments:        []string{file.Path, "-o", outcome.OutputPath},
		WorkingDirectory: filepath.Dir(file.Path),
		Environment:      c.env,
	}
	if c.maxOutput > 0 {
		cmd.Limits = &tactile.ResourceLimits{MaxOutputBytes: c.maxOutput}
	}

	result, err := c.executor.Execute(ctx, cmd)
	if err != nil {
		outcome.Err = err
		logging.ShadersWarn("Could not run compiler for %s: %v", file.Path, err)
		return outcome
	}

	outcome.ExitCode = result.ExitCode
	outcome.Stdout = result.Stdout
	outcome.Stderr = result.Stderr
	outcome.Duration = result.Duration

	switch {
	case result.IsError():
		outcome.Err = errors.New(result.Error)
	case result.Killed:
		outcome.Err = fmt.Errorf("compiler killed: %s", result.KillReason)
	default:
		outcome.Succeeded = result.ExitCode == 0
	}

	if outcome.Succeeded {
		logging.ShadersDebug("Compiled %s -> %s", file.Path, outcome.OutputPath)
	} else {
		logging.ShadersWarn("Failed to compile %s (exit %d): %s", file.Path, outcome.ExitCode, outcome.Detail())
	}
	return outcome
}
