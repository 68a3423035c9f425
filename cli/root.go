package cli

import (
	"errors"
	"fmt"

	"github.com/compozy/agent-s-wrapper/engine/runner"
	"github.com/compozy/agent-s-wrapper/pkg/config"
	"github.com/compozy/agent-s-wrapper/pkg/logger"
	"github.com/compozy/agent-s-wrapper/pkg/version"
	"github.com/spf13/cobra"
)

// ErrTaskFailed is returned once an error Result has already been rendered,
// so callers only need to set the exit code.
var ErrTaskFailed = errors.New("agent task failed")

func RootCmd() *cobra.Command {
	return NewRootCmd(runner.New())
}

// NewRootCmd builds the command around r, which lets tests swap the launcher.
func NewRootCmd(r *runner.Runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "agent-s-wrapper <task>",
		Short: "Run a GUI automation task with Agent-S",
		Long: "Hands a natural-language task to the agent_s executable, streams its output to this " +
			"terminal and reports whether it succeeded.\n\n" +
			"The executable is taken from AGENT_S_PATH or looked up on PATH. Grounding is configured " +
			"through AGENT_S_GROUND_URL, AGENT_S_GROUND_API_KEY, AGENT_S_GROUND_MODEL, " +
			"AGENT_S_GROUNDING_WIDTH and AGENT_S_GROUNDING_HEIGHT.",
		Version:       version.Get().String(),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runTask(cmd, args[0], r)
		},
	}

	flags := root.Flags()
	flags.Int("max-steps", runner.DefaultMaxSteps, "Maximum number of agent steps")
	addReflectionFlags(flags)
	flags.Bool("enable-local-env", false, "Enable local code execution (WARNING: executes arbitrary code)")
	flags.Bool("json", false, "Output result as JSON")
	flags.String("env-file", "", "Load environment variables from a dotenv file before reading configuration")

	persistent := root.PersistentFlags()
	persistent.String("log-level", string(logger.InfoLevel), "Log level (debug, info, warn, error, disabled)")
	persistent.Bool("log-json", false, "Emit logs as JSON")
	persistent.Bool("log-source", false, "Include source locations in logs")

	return root
}

func runTask(cmd *cobra.Command, task string, r *runner.Runner) error {
	log, err := logger.SetupLogger(cmd)
	if err != nil {
		return err
	}
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	if err := loadEnvFile(cmd); err != nil {
		return err
	}
	svc := config.NewService()
	cfg, err := svc.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logConfigSources(log, svc)
	req, err := taskRequestFromFlags(cmd, task)
	if err != nil {
		return err
	}
	if req.EnableLocalEnv {
		log.Warn("Local code execution enabled: the agent may run arbitrary code on this machine")
	}

	result := r.Run(config.ContextWithConfig(ctx, cfg), req, cfg)
	mode := DetectOutputMode(cmd)
	if err := RenderResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, mode, ShouldUseColor(cmd)); err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	if !result.Succeeded() {
		return ErrTaskFailed
	}
	return nil
}

func taskRequestFromFlags(cmd *cobra.Command, task string) (runner.TaskRequest, error) {
	req := runner.NewTaskRequest(task)
	flags := cmd.Flags()
	var err error
	if req.MaxSteps, err = flags.GetInt("max-steps"); err != nil {
		return req, fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	if req.EnableReflection, err = flags.GetBool("enable-reflection"); err != nil {
		return req, fmt.Errorf("failed to get enable-reflection flag: %w", err)
	}
	if req.EnableLocalEnv, err = flags.GetBool("enable-local-env"); err != nil {
		return req, fmt.Errorf("failed to get enable-local-env flag: %w", err)
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func logConfigSources(log logger.Logger, svc config.Service) {
	for _, m := range config.GenerateEnvMappings() {
		log.Debug("Configuration source", "key", m.ConfigPath, "env", m.EnvVar, "source", svc.GetSource(m.ConfigPath))
	}
}
