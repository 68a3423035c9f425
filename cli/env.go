package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// loadEnvFile applies --env-file to the process environment.
// Variables that are already set win over the file.
func loadEnvFile(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return nil
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return fmt.Errorf("failed to resolve env file path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return nil
}
