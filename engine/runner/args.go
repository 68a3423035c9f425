package runner

import (
	"slices"
	"strconv"

	"github.com/compozy/agent-s-wrapper/pkg/config"
)

const (
	flagProvider            = "--provider"
	flagModel               = "--model"
	flagModelTemperature    = "--model_temperature"
	flagMaxTrajectoryLength = "--max_trajectory_length"
	flagTask                = "--task"
	flagGroundProvider      = "--ground_provider"
	flagGroundURL           = "--ground_url"
	flagGroundModel         = "--ground_model"
	flagGroundingWidth      = "--grounding_width"
	flagGroundingHeight     = "--grounding_height"
	flagGroundAPIKey        = "--ground_api_key"
	flagEnableReflection    = "--enable_reflection"
	flagEnableLocalEnv      = "--enable_local_env"
)

// BuildArgs returns the agent's argument vector, executable excluded.
// Grounding flags appear only when a grounding URL is configured, and the
// API key flag only when a key is set as well.
func BuildArgs(req TaskRequest, ground config.GroundingConfig) []string {
	args := []string{
		flagProvider, Provider,
		flagModel, Model,
		flagModelTemperature, ModelTemperature,
		flagMaxTrajectoryLength, strconv.Itoa(req.MaxSteps),
		flagTask, req.Task,
	}
	if ground.Enabled() {
		args = append(args,
			flagGroundProvider, GroundProvider,
			flagGroundURL, ground.URL,
			flagGroundModel, ground.Model,
			flagGroundingWidth, ground.Width,
			flagGroundingHeight, ground.Height,
		)
		if key := ground.APIKey.Value(); key != "" {
			args = append(args, flagGroundAPIKey, key)
		}
	}
	if req.EnableReflection {
		args = append(args, flagEnableReflection)
	}
	if req.EnableLocalEnv {
		args = append(args, flagEnableLocalEnv)
	}
	return args
}

// RedactArgs copies args with the grounding API key masked, for logging.
func RedactArgs(args []string) []string {
	out := slices.Clone(args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == flagGroundAPIKey {
			out[i+1] = config.SensitiveString(out[i+1]).String()
		}
	}
	return out
}
