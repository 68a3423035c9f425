//go:build windows

package runner

import (
	"os"
	"os/exec"
)

// configureCancel keeps the exec default: the child is killed on timeout.
func configureCancel(_ *exec.Cmd) {}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}
