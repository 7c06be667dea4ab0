package tactile

import (
	"fmt"
	"os"
	"path/filepath"

	"photon/internal/logging"
)

// DetachedLauncher starts programs in their own process group and lets go
// of them immediately.
type DetachedLauncher struct{}

// NewDetachedLauncher creates a launcher for fire-and-forget processes.
func NewDetachedLauncher() *DetachedLauncher {
	return &DetachedLauncher{}
}

// Launch starts path with args and releases the process handle.
func (l *DetachedLauncher) Launch(path string, args ...string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("launch %s: %w", abs, err)
	}
	if info.IsDir() {
		return fmt.Errorf("launch %s: is a directory", abs)
	}

	cmd := launchCommand(abs, args...)
	cmd.Dir = filepath.Dir(abs)
	setupDetached(cmd)

	if err := cmd.Start(); err != nil {
		logging.TactileError("Detached launch failed: %s - %v", abs, err)
		return fmt.Errorf("launch %s: %w", abs, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		logging.TactileWarn("Releasing detached process %d failed: %v", pid, err)
	}
	logging.Tactile("Launched detached process: %s (pid=%d)", abs, pid)
	return nil
}
