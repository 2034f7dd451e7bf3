package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockframe/internal/infrastructure/config"
)

func TestNewLogger_StderrOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	require.NoError(t, closeFn())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewLogger_RotatingFile(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv("ENV", "")

	var buf bytes.Buffer
	logger, closeFn, err := NewLogger(config.LoggingConfig{
		Level:      "debug",
		Format:     "console",
		File:       true,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, &buf)
	require.NoError(t, err)

	logger.Info().Str("frame_id", "a").Msg("frame detached")
	require.NoError(t, closeFn())

	dir, err := config.GetLogDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))

	data, err := os.ReadFile(filepath.Join(dir, "dockframe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frame_id":"a"`)
	assert.Contains(t, buf.String(), "frame detached")
}
