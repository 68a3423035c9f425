package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"time"
)

// DefaultGracePeriod is how long a timed-out child may take to exit after
// being asked to stop before it is killed outright.
const DefaultGracePeriod = 10 * time.Second

// Launcher starts a process and waits for it to finish.
// A non-zero exit is reported through the code with a nil error; the error is
// reserved for timeouts (*TimeoutError) and launch failures (*LaunchError).
type Launcher interface {
	Launch(ctx context.Context, name string, args ...string) (int, error)
}

// ProcessLauncher runs the child with its standard streams wired straight to
// ours so the agent's output reaches the terminal as it happens.
type ProcessLauncher struct {
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	GracePeriod time.Duration
}

func NewProcessLauncher() *ProcessLauncher {
	return &ProcessLauncher{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		GracePeriod: DefaultGracePeriod,
	}
}

func (l *ProcessLauncher) Launch(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	configureCancel(cmd)
	var stopped atomic.Bool
	if cancel := cmd.Cancel; cancel != nil {
		cmd.Cancel = func() error {
			err := cancel()
			if err == nil {
				stopped.Store(true)
			}
			return err
		}
	}
	cmd.WaitDelay = l.GracePeriod
	err := cmd.Run()
	return classifyRun(ctx, name, err, stopped.Load())
}

// classifyRun maps the outcome of a run. An exit is reported as the child's
// own status unless we stopped it because ctx was done.
func classifyRun(ctx context.Context, name string, err error, stopped bool) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && !stopped {
		return exitStatus(exitErr.ProcessState), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return -1, &TimeoutError{Cause: ctxErr}
		}
		return -1, &LaunchError{Path: name, Cause: ctxErr}
	}
	if exitErr != nil {
		return exitStatus(exitErr.ProcessState), nil
	}
	return -1, &LaunchError{Path: name, Cause: err}
}
