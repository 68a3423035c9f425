package config

const (
	DefaultGroundModel  = "ui-tars-1.5-7b"
	DefaultGroundWidth  = "1920"
	DefaultGroundHeight = "1080"
)

// Config is the environment-sourced configuration of a single invocation.
type Config struct {
	Agent     AgentConfig     `koanf:"agent"`
	Grounding GroundingConfig `koanf:"grounding"`
}

// AgentConfig locates the automation executable.
type AgentConfig struct {
	Path string `koanf:"path" env:"AGENT_S_PATH"`
}

// GroundingConfig describes the optional grounding service handed to the agent.
// Width and Height are passed to the agent as given; they are only checked
// when grounding is enabled, see validateGrounding.
type GroundingConfig struct {
	URL    string          `koanf:"url"     env:"AGENT_S_GROUND_URL"`
	APIKey SensitiveString `koanf:"api_key" env:"AGENT_S_GROUND_API_KEY"`
	Model  string          `koanf:"model"   env:"AGENT_S_GROUND_MODEL"`
	Width  string          `koanf:"width"   env:"AGENT_S_GROUNDING_WIDTH"`
	Height string          `koanf:"height"  env:"AGENT_S_GROUNDING_HEIGHT"`
}

// Enabled reports whether grounding flags should be passed at all.
func (g GroundingConfig) Enabled() bool {
	return g.URL != ""
}

// Default returns the configuration used when no environment variable is set.
func Default() *Config {
	return &Config{
		Grounding: GroundingConfig{
			Model:  DefaultGroundModel,
			Width:  DefaultGroundWidth,
			Height: DefaultGroundHeight,
		},
	}
}
