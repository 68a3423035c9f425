package runner

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExecutable(t *testing.T) {
	t.Run("Should prefer the explicit override without searching PATH", func(t *testing.T) {
		searched := false
		lookPath := func(string) (string, error) {
			searched = true
			return "/usr/bin/agent_s", nil
		}

		path, err := ResolveExecutable("/opt/agent_s", lookPath)

		require.NoError(t, err)
		assert.Equal(t, "/opt/agent_s", path)
		assert.False(t, searched)
	})

	t.Run("Should search PATH for agent_s when no override is set", func(t *testing.T) {
		var asked string
		lookPath := func(file string) (string, error) {
			asked = file
			return "/home/me/.local/bin/agent_s", nil
		}

		path, err := ResolveExecutable("  ", lookPath)

		require.NoError(t, err)
		assert.Equal(t, "agent_s", asked)
		assert.Equal(t, "/home/me/.local/bin/agent_s", path)
	})

	t.Run("Should report ErrExecutableNotFound when PATH has no agent_s", func(t *testing.T) {
		lookPath := func(string) (string, error) { return "", exec.ErrNotFound }

		_, err := ResolveExecutable("", lookPath)

		assert.True(t, errors.Is(err, ErrExecutableNotFound))
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})
}
