package config

import (
	"reflect"
	"sync"
)

// EnvMapping represents a mapping between environment variable and config path
type EnvMapping struct {
	EnvVar     string
	ConfigPath string
}

var (
	cachedMappings []EnvMapping
	mappingsOnce   sync.Once
)

// GenerateEnvMappings generates environment variable mappings from config struct tags
func GenerateEnvMappings() []EnvMapping {
	mappingsOnce.Do(func() {
		cachedMappings = extractMappings(reflect.TypeOf(Config{}), "")
	})
	return cachedMappings
}

func extractMappings(t reflect.Type, prefix string) []EnvMapping {
	var mappings []EnvMapping
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		koanfTag := field.Tag.Get("koanf")
		if koanfTag == "" || koanfTag == "-" {
			continue
		}
		configPath := koanfTag
		if prefix != "" {
			configPath = prefix + "." + koanfTag
		}
		if envTag := field.Tag.Get("env"); envTag != "" && envTag != "-" {
			mappings = append(mappings, EnvMapping{EnvVar: envTag, ConfigPath: configPath})
		}
		if field.Type.Kind() == reflect.Struct {
			mappings = append(mappings, extractMappings(field.Type, configPath)...)
		}
	}
	return mappings
}

// GetEnvVarForConfigPath returns the environment variable for a given config path
func GetEnvVarForConfigPath(configPath string) string {
	for _, m := range GenerateEnvMappings() {
		if m.ConfigPath == configPath {
			return m.EnvVar
		}
	}
	return ""
}
