package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"photon/internal/config"
	"photon/internal/logging"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Loaded in PersistentPreRunE
	appConfig *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "photon",
	Short: "Photon engine developer bootstrap and shader toolchain",
	Long: `photon prepares a Photon engine checkout for development.

It verifies that the Vulkan SDK is installed at the version the engine
requires (offering to download and run the installer when it is not), keeps
git submodules in sync, generates project files and compiles GLSL shaders to
SPIR-V with the SDK's glslc.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if _, err := ensureConfig(); err != nil {
			return err
		}

		if err := logging.Initialize(workspace, loggingOptions(appConfig.Logging)); err != nil {
			logger.Warn("category logging disabled", zap.Error(err))
		}
		logging.Boot("photon %s started: command=%s workspace=%s", appConfig.Version, cmd.CommandPath(), workspace)
		logging.BootDebug("sdk: env_var=%s required=%s install=%s; shaders: parallelism=%d",
			appConfig.SDK.EnvVar, appConfig.SDK.RequiredVersion, appConfig.SDK.InstallVersion, appConfig.Shaders.Parallelism)
		if logging.IsDebugMode() {
			logger.Debug("category logs enabled", zap.String("dir", filepath.Join(workspace, ".photon", "logs")))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// sdkCmd runs SDK reconciliation only
var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "Check the Vulkan SDK and offer to install the required version",
	Long: `Reads the SDK root from VULKAN_SDK and checks that it names the version the
engine requires. When the SDK is missing or the wrong version you are asked
whether to install it; on yes the installer is downloaded into the vendor
directory and started, and photon exits so it can be re-run afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSDK,
}

// shadersCmd compiles every shader in a directory
var shadersCmd = &cobra.Command{
	Use:   "shaders <dir>",
	Short: "Compile the .vert and .frag shaders in a directory to SPIR-V",
	Long: `Compiles every .vert and .frag file directly inside <dir> with glslc from the
Vulkan SDK, writing <name>.spv next to each source. Every file is attempted
even when others fail.

Exits with status 1 if any shader failed, unless shaders.allow_failures is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runShaders,
}

// setupCmd bootstraps the workspace
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Check the SDK, update submodules and generate project files",
	Long: `Runs the full workspace bootstrap:
  1. Vulkan SDK check (see 'photon sdk')
  2. git submodule update --init --recursive
  3. The configured project generator, if any

A declined SDK install does not stop the remaining steps. A launched
installer does; re-run setup once it has finished.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.photon/config.yaml)")

	rootCmd.AddCommand(sdkCmd)
	rootCmd.AddCommand(shadersCmd)
	rootCmd.AddCommand(setupCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// ensureConfig resolves the workspace and loads the configuration once.
func ensureConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}

	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine workspace: %w", err)
		}
		workspace = wd
	}
	abs, err := filepath.Abs(workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}
	workspace = abs

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath(workspace)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	appConfig = cfg
	if logger != nil {
		logger.Debug("configuration loaded", zap.String("path", path), zap.String("workspace", workspace))
	}
	return cfg, nil
}

func loggingOptions(c config.LoggingConfig) logging.Options {
	return logging.Options{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
		Categories: c.Categories,
	}
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// exitError carries a process exit status with its error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by a command to a process exit status.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
