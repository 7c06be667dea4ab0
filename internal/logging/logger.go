// Package logging provides config-driven categorized file-based logging for photon.
// Logs are written to .photon/logs/ with separate files per category.
// Logging is controlled by logging.debug_mode in .photon/config.yaml - when false,
// every category logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategorySDK     Category = "sdk"     // SDK probe and reconciliation
	CategoryFetch   Category = "fetch"   // Installer downloads
	CategoryTactile Category = "tactile" // Process execution and launch
	CategoryShaders Category = "shaders" // Shader discovery and compilation
	CategorySetup   Category = "setup"   // Submodules and project generation
	CategoryBuild   Category = "build"   // Subprocess environment assembly
)

// Options mirrors the relevant parts of config.LoggingConfig
// to avoid an import cycle.
type Options struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

type categoryLogger struct {
	sugar *zap.SugaredLogger
	file  *os.File
}

var (
	loggers   = make(map[Category]*categoryLogger)
	loggersMu sync.RWMutex
	logsDir   string
	opts      Options
	optsMu    sync.RWMutex
	nop       = zap.NewNop().Sugar()
)

// Initialize sets up the logging directory for the workspace.
// Should be called once at startup.
func Initialize(workspace string, o Options) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	CloseAll()

	optsMu.Lock()
	opts = o
	logsDir = filepath.Join(workspace, ".photon", "logs")
	optsMu.Unlock()

	if !o.DebugMode {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	Boot("photon logging initialized (workspace=%s, level=%s)", workspace, levelOf(o.Level))
	return nil
}

// IsDebugMode returns whether file logging is enabled
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	optsMu.RLock()
	defer optsMu.RUnlock()

	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for the given category.
// Returns a no-op logger if debug mode or the category is disabled.
func Get(category Category) *zap.SugaredLogger {
	if !IsCategoryEnabled(category) {
		return nop
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l.sugar
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l.sugar
	}

	optsMu.RLock()
	dir, o := logsDir, opts
	optsMu.RUnlock()
	if dir == "" {
		return nop
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return nop
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if o.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(file), levelOf(o.Level))
	l := &categoryLogger{
		sugar: zap.New(core).Sugar().With("category", string(category)),
		file:  file,
	}
	loggers[category] = l
	return l.sugar
}

// levelOf maps a config level string onto a zap level, defaulting to info.
func levelOf(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// CloseAll flushes and closes every open category log file.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*categoryLogger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debugf(format, args...)
}

// SDK logs to the sdk category
func SDK(format string, args ...interface{}) {
	Get(CategorySDK).Infof(format, args...)
}

// SDKDebug logs debug to the sdk category
func SDKDebug(format string, args ...interface{}) {
	Get(CategorySDK).Debugf(format, args...)
}

// SDKWarn logs warning to the sdk category
func SDKWarn(format string, args ...interface{}) {
	Get(CategorySDK).Warnf(format, args...)
}

// Fetch logs to the fetch category
func Fetch(format string, args ...interface{}) {
	Get(CategoryFetch).Infof(format, args...)
}

// FetchDebug logs debug to the fetch category
func FetchDebug(format string, args ...interface{}) {
	Get(CategoryFetch).Debugf(format, args...)
}

// FetchError logs error to the fetch category
func FetchError(format string, args ...interface{}) {
	Get(CategoryFetch).Errorf(format, args...)
}

// Tactile logs to the tactile category
func Tactile(format string, args ...interface{}) {
	Get(CategoryTactile).Infof(format, args...)
}

// TactileDebug logs debug to the tactile category
func TactileDebug(format string, args ...interface{}) {
	Get(CategoryTactile).Debugf(format, args...)
}

// TactileWarn logs warning to the tactile category
func TactileWarn(format string, args ...interface{}) {
	Get(CategoryTactile).Warnf(format, args...)
}

// TactileError logs error to the tactile category
func TactileError(format string, args ...interface{}) {
	Get(CategoryTactile).Errorf(format, args...)
}

// Shaders logs to the shaders category
func Shaders(format string, args ...interface{}) {
	Get(CategoryShaders).Infof(format, args...)
}

// ShadersDebug logs debug to the shaders category
func ShadersDebug(format string, args ...interface{}) {
	Get(CategoryShaders).Debugf(format, args...)
}

// ShadersWarn logs warning to the shaders category
func ShadersWarn(format string, args ...interface{}) {
	Get(CategoryShaders).Warnf(format, args...)
}

// Setup logs to the setup category
func Setup(format string, args ...interface{}) {
	Get(CategorySetup).Infof(format, args...)
}

// SetupDebug logs debug to the setup category
func SetupDebug(format string, args ...interface{}) {
	Get(CategorySetup).Debugf(format, args...)
}

// Build logs to the build category
func Build(format string, args ...interface{}) {
	Get(CategoryBuild).Infof(format, args...)
}

// BuildDebug logs debug to the build category
func BuildDebug(format string, args ...interface{}) {
	Get(CategoryBuild).Debugf(format, args...)
}

// =============================================================================
// TIMING
// =============================================================================

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugf("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithInfo ends the timer and logs at info level
func (t *Timer) StopWithInfo() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Infof("%s completed in %v", t.op, elapsed)
	return elapsed
}
