// Package setup sequences a workspace bootstrap: SDK reconciliation, git
// submodule synchronisation and project file generation.
package setup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"photon/internal/config"
	"photon/internal/logging"
	"photon/internal/sdk"
	"photon/internal/tactile"
)

// SDKReconciler is the part of sdk.Reconciler the bootstrap needs.
type SDKReconciler interface {
	Reconcile(ctx context.Context) (sdk.Result, error)
}

// StepResult records one external step.
type StepResult struct {
	Name     string
	Command  string
	Skipped  bool
	ExitCode int
	Duration time.Duration
}

// Summary is the outcome of a bootstrap run.
type Summary struct {
	SDK   sdk.Result
	Steps []StepResult

	// Stopped is true when the SDK installer was launched and the run
	// must be repeated.
	Stopped bool
}

// Runner executes the bootstrap steps.
type Runner struct {
	executor  tactile.Executor
	cfg       config.SetupConfig
	workspace string
	out       io.Writer
}

// NewRunner creates a Runner. Step output is echoed to out.
func NewRunner(executor tactile.Executor, cfg config.SetupConfig, workspace string, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{executor: executor, cfg: cfg, workspace: workspace, out: out}
}

// Run reconciles the SDK and then runs the workspace steps. An aborted SDK
// install does not stop the remaining steps; a launched installer does.
func (r *Runner) Run(ctx context.Context, rec SDKReconciler) (Summary, error) {
	timer := logging.StartTimer(logging.CategorySetup, "Bootstrap")
	defer timer.StopWithInfo()

	var summary Summary

	res, err := rec.Reconcile(ctx)
	summary.SDK = res
	if err != nil {
		return summary, err
	}
	if res.State == sdk.TerminatedForRerun {
		summary.Stopped = true
		logging.Setup("Stopping after installer launch")
		return summary, nil
	}
	if res.State == sdk.Aborted {
		logging.Setup("SDK not installed; continuing with workspace steps")
	}

	step, err := r.SyncSubmodules(ctx)
	summary.Steps = append(summary.Steps, step)
	if err != nil {
		return summary, err
	}

	step, err = r.GenerateProjects(ctx)
	summary.Steps = append(summary.Steps, step)
	if err != nil {
		return summary, err
	}

	return summary, nil
}

// SyncSubmodules runs `git submodule update --init --recursive` in the
// workspace when enabled.
func (r *Runner) SyncSubmodules(ctx context.Context) (StepResult, error) {
	cmd := tactile.Command{
		Binary:           "git",
		Arguments:        []string{"submodule", "update", "--init", "--recursive"},
		WorkingDirectory: r.workspace,
	}
	if !r.cfg.Submodules {
		return StepResult{Name: "submodules", Command: cmd.CommandString(), Skipped: true}, nil
	}

	fmt.Fprintln(r.out, "\nUpdating submodules...")
	return r.runStep(ctx, "submodules", cmd)
}

// GenerateProjects runs the configured project generator. Relative
// generator paths are resolved against the workspace.
func (r *Runner) GenerateProjects(ctx context.Context) (StepResult, error) {
	if r.cfg.ProjectGenerator == "" {
		return StepResult{Name: "projects", Skipped: true}, nil
	}

	generator := r.cfg.ProjectGenerator
	if !filepath.IsAbs(generator) {
		generator = filepath.Join(r.workspace, filepath.FromSlash(generator))
	}

	cmd := tactile.Command{
		Binary:           generator,
		Arguments:        r.cfg.GeneratorArgs,
		WorkingDirectory: r.workspace,
	}

	fmt.Fprintln(r.out, "\nGenerating project files...")
	return r.runStep(ctx, "projects", cmd)
}

func (r *Runner) runStep(ctx context.Context, name string, cmd tactile.Command) (StepResult, error) {
	step := StepResult{Name: name, Command: cmd.CommandString(), ExitCode: -1}
	logging.Setup("Running %s: %s", name, step.Command)

	result, err := r.executor.Execute(ctx, cmd)
	if err != nil {
		return step, fmt.Errorf("%s: %w", name, err)
	}

	step.ExitCode = result.ExitCode
	step.Duration = result.Duration
	if out := result.Output(); out != "" {
		fmt.Fprint(r.out, out)
		if out[len(out)-1] != '\n' {
			fmt.Fprintln(r.out)
		}
	}

	switch {
	case result.IsError():
		return step, fmt.Errorf("%s: %s", name, result.Error)
	case result.Killed:
		return step, fmt.Errorf("%s: %s", name, result.KillReason)
	case result.ExitCode != 0:
		return step, fmt.Errorf("%s: %s exited with code %d", name, step.Command, result.ExitCode)
	}

	logging.SetupDebug("%s finished in %s", name, step.Duration)
	return step, nil
}
