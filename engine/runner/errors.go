package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrExecutableNotFound means neither AGENT_S_PATH nor PATH yielded the agent.
	ErrExecutableNotFound = errors.New(ExecutableName + " executable not found")

	// ErrTimeout represents a child that outlived its deadline
	ErrTimeout = errors.New("timeout expired")
)

// TimeoutError is returned by a Launcher when the deadline killed the child.
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	return ErrTimeout.Error()
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// LaunchError wraps failures to start or wait on the child process.
type LaunchError struct {
	Path  string
	Cause error
}

func (e *LaunchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to launch %s", e.Path)
	}
	return e.Cause.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}
