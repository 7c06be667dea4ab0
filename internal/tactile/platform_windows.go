//go:build windows

package tactile

import (
	"os/exec"
	"syscall"
)

// launchCommand goes through the shell's start verb so installers whose
// manifest requires elevation get the UAC prompt. CreateProcess on such an
// image fails with ERROR_ELEVATION_REQUIRED.
func launchCommand(path string, args ...string) *exec.Cmd {
	cmdArgs := append([]string{"/c", "start", "", path}, args...)
	return exec.Command("cmd", cmdArgs...)
}

// setupDetached puts the installer in a new process group so Ctrl+C in the
// console that started photon does not reach it.
func setupDetached(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}
