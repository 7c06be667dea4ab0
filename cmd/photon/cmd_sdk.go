package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photon/cmd/photon/ui"
	"photon/internal/config"
	"photon/internal/fetch"
	"photon/internal/sdk"
	"photon/internal/tactile"
)

// consentProvider picks the key prompter on an interactive terminal and the
// line prompter otherwise (pipes, CI, tests).
func consentProvider(in io.Reader, out io.Writer) sdk.ConsentProvider {
	inFile, ok := in.(*os.File)
	if ok && isatty.IsTerminal(inFile.Fd()) && isTerminal(out) {
		return ui.NewKeyPrompter(in, out)
	}
	return sdk.NewLinePrompter(in, out)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// newFetcher draws a progress bar when out is a terminal.
func newFetcher(out io.Writer) *fetch.Fetcher {
	if isTerminal(out) {
		return fetch.New(nil, fetch.WithProgress(ui.NewDownloadBar(out).Update))
	}
	return fetch.New(nil)
}

// newReconciler wires the production collaborators.
func newReconciler(cmd *cobra.Command, cfg *config.Config, printer *ui.Printer) *sdk.Reconciler {
	return sdk.NewReconciler(cfg.SDK, workspace, sdk.Deps{
		Probe:    sdk.NewProbe(sdk.EnvironmentFromOS(), cfg.SDK),
		Consent:  consentProvider(cmd.InOrStdin(), cmd.OutOrStdout()),
		Fetcher:  newFetcher(cmd.OutOrStdout()),
		Launcher: tactile.NewDetachedLauncher(),
		Reporter: printer,
	})
}

func runSDK(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	res, err := newReconciler(cmd, cfg, printer).Reconcile(commandContext(cmd))
	if err != nil {
		return err
	}

	logger.Debug("sdk reconciliation finished",
		zap.Stringer("state", res.State),
		zap.String("root", res.Installation.Root),
		zap.Bool("debug_component_missing", res.DebugComponentMissing))
	return nil
}
