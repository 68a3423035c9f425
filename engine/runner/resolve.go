package runner

import (
	"errors"
	"os/exec"
	"strings"
)

// LookPathFunc searches the executable search path, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// ResolveExecutable prefers an explicit override and otherwise searches PATH.
// The override is returned as given; a bad override surfaces at launch time.
func ResolveExecutable(override string, lookPath LookPathFunc) (string, error) {
	if path := strings.TrimSpace(override); path != "" {
		return path, nil
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(ExecutableName)
	if err != nil || path == "" {
		return "", errors.Join(ErrExecutableNotFound, err)
	}
	return path, nil
}
