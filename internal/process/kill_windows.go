//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// Isolate makes context cancellation kill cmd and its child processes.
// cmd must come from exec.CommandContext and not be started yet.
func Isolate(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return KillProcessGroup(cmd.Process.Pid)
	}
}

// KillProcessGroup kills a process tree using taskkill.
// /F = force kill, /T = terminate child processes.
func KillProcessGroup(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
