package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	t.Run("Should include version, commit and build date", func(t *testing.T) {
		info := Info{Version: "v0.1.0", CommitHash: "abc123", BuildDate: "2026-01-01T00:00:00Z"}

		assert.Equal(t, "v0.1.0 (commit abc123, built 2026-01-01T00:00:00Z)", info.String())
	})

	t.Run("Should reflect the build variables", func(t *testing.T) {
		assert.Equal(t, Version, Get().Version)
	})
}
