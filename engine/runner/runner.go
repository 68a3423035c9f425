package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/compozy/agent-s-wrapper/pkg/config"
	"github.com/compozy/agent-s-wrapper/pkg/logger"
)

const (
	installHint     = ExecutableName + " not found in PATH. Install with: pip install gui-agents"
	successNote     = "Output was streamed to terminal. Check logs for details."
	failureNote     = "Check logs for error details."
	timeoutDetail   = "Timeout expired"
	logsRelativeDir = "workspace/Agent-S/logs"
)

// Runner turns a TaskRequest into exactly one agent process and one Result.
type Runner struct {
	launcher Launcher
	lookPath LookPathFunc
	homeDir  func() (string, error)
	timeout  time.Duration
}

type Option func(*Runner)

func WithLauncher(l Launcher) Option {
	return func(r *Runner) {
		r.launcher = l
	}
}

func WithLookPath(fn LookPathFunc) Option {
	return func(r *Runner) {
		r.lookPath = fn
	}
}

func WithHomeDir(fn func() (string, error)) Option {
	return func(r *Runner) {
		r.homeDir = fn
	}
}

func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		launcher: NewProcessLauncher(),
		homeDir:  os.UserHomeDir,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the agent for req and never returns a nil Result.
// Every failure, including a missing executable, becomes an error Result.
// A nil cfg falls back to the configuration carried by ctx.
func (r *Runner) Run(ctx context.Context, req TaskRequest, cfg *config.Config) *Result {
	log := logger.FromContext(ctx)
	if cfg == nil {
		cfg = config.FromContext(ctx)
	}
	path, err := ResolveExecutable(cfg.Agent.Path, r.lookPath)
	if err != nil {
		log.Error("Agent executable not found", "executable", ExecutableName, "error", err)
		return &Result{
			Status:  StatusError,
			Message: installHint,
			Error:   ErrExecutableNotFound.Error(),
		}
	}
	args := BuildArgs(req, cfg.Grounding)
	log.Info("Starting Agent-S", "task", req.Task, "max_steps", req.MaxSteps, "grounding", cfg.Grounding.Enabled())
	log.Info("Command", "command", strings.Join(append([]string{path}, RedactArgs(args)...), " "))

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	start := time.Now()
	code, err := r.launcher.Launch(runCtx, path, args...)
	log.Debug("Agent-S finished", "exit_code", code, "duration", time.Since(start), "error", err)
	return r.interpret(req, code, err)
}

func (r *Runner) interpret(req TaskRequest, code int, err error) *Result {
	switch {
	case errors.Is(err, ErrTimeout):
		return &Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Agent-S timed out after %s for task: %s", formatTimeout(r.timeout), req.Task),
			Error:   timeoutDetail,
		}
	case err != nil:
		return &Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Failed to execute Agent-S: %s", err),
			Error:   err.Error(),
		}
	case code != 0:
		return &Result{
			Status:        StatusError,
			Message:       fmt.Sprintf("Agent-S failed with return code %d", code),
			LogsDirectory: r.logsDirectory(),
			Note:          failureNote,
		}
	default:
		return &Result{
			Status:        StatusSuccess,
			Message:       fmt.Sprintf("Agent-S completed the task: %s", req.Task),
			LogsDirectory: r.logsDirectory(),
			Note:          successNote,
		}
	}
}

// logsDirectory is only a hint: the agent writes its logs there by convention.
func (r *Runner) logsDirectory() string {
	home, err := r.homeDir()
	if err != nil || home == "" {
		return "~/" + logsRelativeDir + "/"
	}
	return filepath.Join(home, filepath.FromSlash(logsRelativeDir)) + string(filepath.Separator)
}

func formatTimeout(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return d.String()
}
