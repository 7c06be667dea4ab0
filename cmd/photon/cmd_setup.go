package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photon/cmd/photon/ui"
	"photon/internal/setup"
	"photon/internal/tactile"
)

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	runner := setup.NewRunner(tactile.NewDirectExecutor(), cfg.Setup, workspace, cmd.OutOrStdout())

	summary, err := runner.Run(commandContext(cmd), newReconciler(cmd, cfg, printer))
	if err != nil {
		return err
	}

	for _, step := range summary.Steps {
		logger.Debug("setup step",
			zap.String("name", step.Name),
			zap.Bool("skipped", step.Skipped),
			zap.Int("exit_code", step.ExitCode),
			zap.Duration("duration", step.Duration))
	}
	if !summary.Stopped {
		printer.Info("\nSetup complete.")
	}
	return nil
}
