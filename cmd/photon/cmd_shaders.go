package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photon/cmd/photon/ui"
	"photon/internal/build"
	"photon/internal/sdk"
	"photon/internal/shaders"
	"photon/internal/tactile"
)

func runShaders(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(cmd.OutOrStdout())

	files, err := shaders.Discover(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printer.Warn(fmt.Sprintf("No .vert or .frag files found in %s", args[0]))
		return nil
	}

	inst := sdk.NewProbe(sdk.EnvironmentFromOS(), cfg.SDK).Probe()
	compilerPath := cfg.Shaders.Compiler
	if compilerPath == "" {
		compilerPath, err = shaders.LocateCompiler(inst.Root, runtime.GOOS)
		if err != nil {
			return fmt.Errorf("%w (is %s set?)", err, cfg.SDK.EnvVar)
		}
	}

	compiler := shaders.NewCompiler(
		tactile.NewDirectExecutor(),
		shaders.WithEnvironment(build.CompilerEnv(cfg.SDK.EnvVar, inst.Root, runtime.GOOS)),
		shaders.WithParallelism(cfg.Shaders.Parallelism),
		shaders.WithMaxOutputBytes(cfg.Shaders.MaxOutputBytes),
	)

	report := compiler.CompileAll(commandContext(cmd), files, compilerPath)
	for _, o := range report.Outcomes {
		printer.Outcome(o)
	}
	printer.Summary(report)

	logger.Debug("shader compilation finished",
		zap.String("run_id", report.RunID.String()),
		zap.String("compiler", report.CompilerPath),
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()),
		zap.Duration("duration", report.Duration))

	if !report.OK() && !cfg.Shaders.AllowFailures {
		return &exitError{
			code: 1,
			err:  fmt.Errorf("%d of %d shaders failed to compile", report.Failed(), len(report.Outcomes)),
		}
	}
	return nil
}
