//go:build !windows

package runner

import (
	"os"
	"os/exec"
	"syscall"
)

// configureCancel asks the child to stop with SIGTERM; WaitDelay escalates to
// SIGKILL. The child stays in our process group so it keeps the terminal.
func configureCancel(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
}

// exitStatus reports a child killed by a signal as the negated signal number.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return state.ExitCode()
}
