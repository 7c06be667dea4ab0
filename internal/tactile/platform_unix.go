//go:build !windows

package tactile

import (
	"os/exec"
	"syscall"
)

// launchCommand starts path directly.
func launchCommand(path string, args ...string) *exec.Cmd {
	return exec.Command(path, args...)
}

// setupDetached runs the command in its own process group so it survives
// the terminal signals delivered to photon.
func setupDetached(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}
