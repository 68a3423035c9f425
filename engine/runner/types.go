package runner

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ExecutableName   = "agent_s"
	Provider         = "anthropic"
	Model            = "claude-sonnet-4-5"
	ModelTemperature = "1.0"
	GroundProvider   = "huggingface"

	DefaultMaxSteps = 15
	DefaultTimeout  = 600 * time.Second
)

// TaskRequest is one natural-language task plus the knobs passed to the agent.
type TaskRequest struct {
	Task             string `validate:"required"`
	MaxSteps         int    `validate:"min=1"`
	EnableReflection bool
	// EnableLocalEnv lets the agent execute arbitrary code on this machine.
	EnableLocalEnv bool
}

// NewTaskRequest returns a request with the default step budget and reflection on.
func NewTaskRequest(task string) TaskRequest {
	return TaskRequest{
		Task:             task,
		MaxSteps:         DefaultMaxSteps,
		EnableReflection: true,
	}
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the uniform outcome of one invocation.
type Result struct {
	Status        Status `json:"status"`
	Message       string `json:"message"`
	Error         string `json:"error,omitempty"`
	LogsDirectory string `json:"logs_directory,omitempty"`
	Note          string `json:"note,omitempty"`
}

func (r *Result) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

var requestValidator = validator.New()

// Validate rejects an empty task or a non-positive step budget.
func (r TaskRequest) Validate() error {
	if err := requestValidator.Struct(r); err != nil {
		return fmt.Errorf("invalid task request: %w", err)
	}
	return nil
}
