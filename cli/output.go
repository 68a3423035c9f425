package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/agent-s-wrapper/engine/runner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// OutputMode selects how a Result is rendered
type OutputMode string

const (
	ModeText OutputMode = "text"
	ModeJSON OutputMode = "json"
)

const (
	successGlyph = "✓"
	failureGlyph = "✗"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

// DetectOutputMode returns ModeJSON when --json is set.
func DetectOutputMode(cmd *cobra.Command) OutputMode {
	if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil && jsonFlag {
		return ModeJSON
	}
	return ModeText
}

// ShouldUseColor determines if colored output should be used
func ShouldUseColor(cmd *cobra.Command) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}
	return isTerminal(cmd.OutOrStdout())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderResult writes result to stdout; in text mode the error detail goes to stderr.
func RenderResult(stdout, stderr io.Writer, result *runner.Result, mode OutputMode, color bool) error {
	switch mode {
	case ModeJSON:
		return writeJSON(stdout, result)
	case ModeText:
		return writeText(stdout, stderr, result, color)
	default:
		return fmt.Errorf("unsupported output mode: %s", mode)
	}
}

func writeJSON(w io.Writer, result *runner.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

func writeText(stdout, stderr io.Writer, result *runner.Result, color bool) error {
	glyph, style := failureGlyph, errorStyle
	if result.Succeeded() {
		glyph, style = successGlyph, successStyle
	}
	line := glyph + " " + result.Message
	if color {
		line = style.Render(line)
	}
	if _, err := fmt.Fprintln(stdout, line); err != nil {
		return err
	}
	if !result.Succeeded() && result.Error != "" {
		if _, err := fmt.Fprintf(stderr, "\nError:\n%s\n", result.Error); err != nil {
			return err
		}
	}
	return nil
}
