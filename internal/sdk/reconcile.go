package sdk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"photon/internal/config"
	"photon/internal/logging"
	"photon/internal/tactile"
)

// Fetcher downloads url to dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Reporter receives operator-facing messages.
type Reporter interface {
	Info(msg string)
	Warn(msg string)
}

// WriterReporter prints messages as plain lines.
type WriterReporter struct {
	W io.Writer
}

// Info implements Reporter.
func (r WriterReporter) Info(msg string) { fmt.Fprintln(r.W, msg) }

// Warn implements Reporter.
func (r WriterReporter) Warn(msg string) { fmt.Fprintln(r.W, msg) }

// Deps are the collaborators a Reconciler drives.
type Deps struct {
	Probe    Prober
	Consent  ConsentProvider
	Fetcher  Fetcher
	Launcher tactile.Launcher
	Reporter Reporter
}

// Result describes how a reconciliation run ended.
type Result struct {
	State        State
	Installation Installation

	// Set once consent was given
	InstallerURL  string
	InstallerPath string

	// Advisory only; never blocks Validated
	DebugComponentMissing bool

	// Every state entered, in order, starting with Unchecked
	Trail []State
}

// Validated reports whether the SDK is usable.
func (r Result) Validated() bool {
	return r.State == Validated
}

func (r *Result) enter(s State) {
	r.State = s
	r.Trail = append(r.Trail, s)
	logging.SDKDebug("reconcile state -> %s", s)
}

// Reconciler drives the installed SDK toward the required version.
type Reconciler struct {
	cfg       config.SDKConfig
	workspace string
	deps      Deps
}

// NewReconciler creates a reconciler. Installer downloads land under the
// configured vendor directory, resolved against workspace.
func NewReconciler(cfg config.SDKConfig, workspace string, deps Deps) *Reconciler {
	if deps.Reporter == nil {
		deps.Reporter = WriterReporter{W: io.Discard}
	}
	return &Reconciler{cfg: cfg, workspace: workspace, deps: deps}
}

// Reconcile probes the SDK and, if it is missing or the wrong version, asks
// for consent to install it. A declined install ends in Aborted with a nil
// error. Download and launch failures are returned.
func (r *Reconciler) Reconcile(ctx context.Context) (Result, error) {
	timer := logging.StartTimer(logging.CategorySDK, "Reconcile")
	defer timer.Stop()

	res := Result{}
	res.enter(Unchecked)

	inst := r.deps.Probe.Probe()
	res.Installation = inst

	if !inst.Present() {
		r.deps.Reporter.Warn(fmt.Sprintf("You don't have the %s installed!", r.cfg.Product))
		logging.SDK("%s not set; SDK not installed", r.cfg.EnvVar)
		return r.install(ctx, res)
	}

	r.deps.Reporter.Info(fmt.Sprintf("Located %s at %s", r.cfg.Product, inst.Root))
	if !strings.Contains(inst.Version, r.cfg.RequiredVersion) {
		r.deps.Reporter.Warn(fmt.Sprintf("You don't have the correct %s version! (Engine requires %s)",
			r.cfg.Product, r.cfg.RequiredVersion))
		logging.SDKWarn("version %q does not contain %q", inst.Version, r.cfg.RequiredVersion)
		return r.install(ctx, res)
	}

	r.deps.Reporter.Info(fmt.Sprintf("Correct %s located at %s", r.cfg.Product, inst.Root))
	res.enter(Validated)

	if !inst.HasDebugComponent {
		res.DebugComponentMissing = true
		r.deps.Reporter.Warn(fmt.Sprintf("No %s debug libs found. Install %s with debug libs.",
			r.cfg.Product, r.cfg.Product))
		logging.SDKWarn("debug library %s missing under %s", r.cfg.DebugLibrary, inst.Root)
	}

	logging.SDK("SDK validated at %s", inst.Root)
	return res, nil
}

// install runs the consent, download and launch steps.
func (r *Reconciler) install(ctx context.Context, res Result) (Result, error) {
	res.enter(AwaitingConsent)

	prompt := fmt.Sprintf("Would you like to install %s %s?", r.cfg.Product, r.cfg.InstallVersion)
	yes, err := r.deps.Consent.Confirm(ctx, prompt)
	if err != nil {
		return res, fmt.Errorf("consent prompt failed: %w", err)
	}
	if !yes {
		res.enter(Aborted)
		r.deps.Reporter.Warn(fmt.Sprintf("%s not installed correctly.", r.cfg.Product))
		logging.SDK("operator declined install")
		return res, nil
	}

	res.InstallerURL = r.cfg.InstallerURL()
	res.InstallerPath = r.cfg.InstallerPath(r.workspace)

	if err := os.MkdirAll(filepath.Dir(res.InstallerPath), 0755); err != nil {
		return res, fmt.Errorf("failed to create vendor directory: %w", err)
	}

	res.enter(Downloading)
	r.deps.Reporter.Info(fmt.Sprintf("Downloading %s to %s", res.InstallerURL, res.InstallerPath))
	if err := r.deps.Fetcher.Fetch(ctx, res.InstallerURL, res.InstallerPath); err != nil {
		return res, fmt.Errorf("failed to download %s installer: %w", r.cfg.Product, err)
	}

	r.deps.Reporter.Info(fmt.Sprintf("Running %s installer...", r.cfg.Product))
	if err := r.deps.Launcher.Launch(res.InstallerPath); err != nil {
		return res, fmt.Errorf("failed to launch installer: %w", err)
	}
	res.enter(LaunchedInstaller)

	res.enter(TerminatedForRerun)
	r.deps.Reporter.Info("Re-run this command after installation!")
	logging.SDK("installer launched from %s; run must be repeated", res.InstallerPath)
	return res, nil
}
