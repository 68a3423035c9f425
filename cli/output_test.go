package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/compozy/agent-s-wrapper/engine/runner"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResult(t *testing.T) {
	success := &runner.Result{
		Status:        runner.StatusSuccess,
		Message:       "Agent-S completed the task: open <b>mail</b> & reply",
		LogsDirectory: "/home/tester/workspace/Agent-S/logs/",
		Note:          "Output was streamed to terminal. Check logs for details.",
	}
	timeout := &runner.Result{
		Status:  runner.StatusError,
		Message: "Agent-S timed out after 10 minutes for task: t",
		Error:   "Timeout expired",
	}

	t.Run("Should round-trip the JSON document", func(t *testing.T) {
		for _, want := range []*runner.Result{success, timeout} {
			var stdout, stderr bytes.Buffer

			require.NoError(t, RenderResult(&stdout, &stderr, want, ModeJSON, false))

			var got runner.Result
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
			assert.Equal(t, *want, got)
			assert.Empty(t, stderr.String())
		}
	})

	t.Run("Should omit empty optional fields in JSON", func(t *testing.T) {
		var stdout bytes.Buffer

		require.NoError(t, RenderResult(&stdout, &bytes.Buffer{}, timeout, ModeJSON, false))

		assert.NotContains(t, stdout.String(), "logs_directory")
		assert.NotContains(t, stdout.String(), "note")
		assert.Contains(t, stdout.String(), "  \"status\": \"error\"")
	})

	t.Run("Should not escape HTML characters in JSON", func(t *testing.T) {
		var stdout bytes.Buffer

		require.NoError(t, RenderResult(&stdout, &bytes.Buffer{}, success, ModeJSON, false))

		assert.Contains(t, stdout.String(), "<b>mail</b> & reply")
	})

	t.Run("Should start the success line with the check glyph", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		require.NoError(t, RenderResult(&stdout, &stderr, success, ModeText, false))

		assert.True(t, strings.HasPrefix(stdout.String(), "✓ "))
		assert.Contains(t, stdout.String(), success.Message)
		assert.Empty(t, stderr.String())
	})

	t.Run("Should write the error detail to stderr", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		require.NoError(t, RenderResult(&stdout, &stderr, timeout, ModeText, false))

		assert.Equal(t, "✗ "+timeout.Message+"\n", stdout.String())
		assert.Equal(t, "\nError:\nTimeout expired\n", stderr.String())
	})

	t.Run("Should keep the glyph and message when colored", func(t *testing.T) {
		var stdout bytes.Buffer

		require.NoError(t, RenderResult(&stdout, &bytes.Buffer{}, success, ModeText, true))

		assert.Contains(t, stdout.String(), "✓ ")
		assert.Contains(t, stdout.String(), success.Message)
	})

	t.Run("Should reject an unknown mode", func(t *testing.T) {
		err := RenderResult(&bytes.Buffer{}, &bytes.Buffer{}, success, OutputMode("yaml"), false)

		assert.ErrorContains(t, err, "unsupported output mode")
	})
}

func TestDetectOutputMode(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().Bool("json", false, "")
		return cmd
	}

	t.Run("Should default to text", func(t *testing.T) {
		assert.Equal(t, ModeText, DetectOutputMode(newCmd()))
	})

	t.Run("Should switch to JSON with --json", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("json", "true"))

		assert.Equal(t, ModeJSON, DetectOutputMode(cmd))
	})
}

func TestShouldUseColor(t *testing.T) {
	t.Run("Should not color a buffer", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("TERM", "xterm-256color")
		cmd := &cobra.Command{Use: "test"}
		cmd.SetOut(&bytes.Buffer{})

		assert.False(t, ShouldUseColor(cmd))
	})

	t.Run("Should respect NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		assert.False(t, ShouldUseColor(&cobra.Command{Use: "test"}))
	})
}
