package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SetupLogger builds a logger from the persistent log flags of cmd.
func SetupLogger(cmd *cobra.Command) (Logger, error) {
	logLevel, logJSON, logSource, err := GetLoggerConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(logLevel)
	cfg.JSON = logJSON
	cfg.AddSource = logSource
	cfg.Output = cmd.ErrOrStderr()
	return NewLogger(cfg), nil
}

func GetLoggerConfig(cmd *cobra.Command) (string, bool, bool, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-source flag: %w", err)
	}

	return logLevel, logJSON, logSource, nil
}
