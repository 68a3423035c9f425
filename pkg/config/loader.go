package config

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// SourceType identifies where a configuration key got its value.
type SourceType string

const (
	SourceDefault SourceType = "default"
	SourceEnv     SourceType = "env"
)

// Service loads and validates the configuration.
type Service interface {
	Load(ctx context.Context) (*Config, error)
	Validate(config *Config) error
	GetSource(key string) SourceType
}

type loader struct {
	koanf     *koanf.Koanf
	validator *validator.Validate
	sources   map[string]SourceType
	sourcesMu sync.RWMutex
}

func sensitiveStringDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(SensitiveString("")) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return SensitiveString(v), nil
	case []byte:
		return SensitiveString(v), nil
	default:
		return data, nil
	}
}

// NewService creates a new configuration service with validation support.
func NewService() Service {
	return &loader{
		koanf:     koanf.New("."),
		validator: newValidator(),
		sources:   make(map[string]SourceType),
	}
}

// newValidator reports fields by their koanf path so errors can name the
// environment variable behind them.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateGrounding, GroundingConfig{})
	return v
}

// validateGrounding checks the grounding settings only when a grounding URL
// is set; otherwise they never reach the agent.
func validateGrounding(sl validator.StructLevel) {
	g, ok := sl.Current().Interface().(GroundingConfig)
	if !ok || !g.Enabled() {
		return
	}
	if strings.TrimSpace(g.Model) == "" {
		sl.ReportError(g.Model, "model", "Model", "required", "")
	}
	if !isPositiveInt(g.Width) {
		sl.ReportError(g.Width, "width", "Width", "positive_int", "")
	}
	if !isPositiveInt(g.Height) {
		sl.ReportError(g.Height, "height", "Height", "positive_int", "")
	}
}

func isPositiveInt(value string) bool {
	n, err := strconv.Atoi(value)
	return err == nil && n > 0
}

// Load applies defaults, then the mapped environment variables, then validates.
func (l *loader) Load(_ context.Context) (*Config, error) {
	l.reset()
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

func (l *loader) reset() {
	l.koanf.Cut("")
	l.sourcesMu.Lock()
	l.sources = make(map[string]SourceType)
	l.sourcesMu.Unlock()
}

func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	for _, key := range l.koanf.Keys() {
		l.trackSource(key, SourceDefault)
	}
	return nil
}

// loadEnvironment reads only the variables named by env struct tags.
// Empty values count as unset so they never shadow a default.
func (l *loader) loadEnvironment() error {
	envToPath := make(map[string]string)
	for _, mapping := range GenerateEnvMappings() {
		envToPath[mapping.EnvVar] = mapping.ConfigPath
	}
	loaded := make([]string, 0, len(envToPath))
	if err := l.koanf.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key string, value string) (string, any) {
			configPath, exists := envToPath[key]
			if !exists || value == "" {
				return "", nil
			}
			loaded = append(loaded, configPath)
			return configPath, value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	for _, key := range loaded {
		l.trackSource(key, SourceEnv)
	}
	return nil
}

func (l *loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook:       mapstructure.DecodeHookFuncType(sensitiveStringDecodeHook),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := l.Validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Validate checks if the configuration meets all validation requirements.
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := l.validator.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validation failed: %w", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	name := path
	if envVar := GetEnvVarForConfigPath(path); envVar != "" {
		name = envVar
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required when grounding is enabled", name)
	case "positive_int":
		return fmt.Sprintf("%s must be a positive integer, got %q", name, fe.Value())
	default:
		return fmt.Sprintf("%s failed the %q check", name, fe.Tag())
	}
}

// GetSource returns the source type for a specific configuration key.
func (l *loader) GetSource(key string) SourceType {
	l.sourcesMu.RLock()
	defer l.sourcesMu.RUnlock()
	if source, ok := l.sources[key]; ok {
		return source
	}
	return SourceDefault
}

func (l *loader) trackSource(key string, source SourceType) {
	l.sourcesMu.Lock()
	defer l.sourcesMu.Unlock()
	l.sources[key] = source
}
