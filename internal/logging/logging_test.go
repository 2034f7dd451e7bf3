package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestWithFrameID_AddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "frames")
	ctx = WithFrameID(ctx, "v1")
	FromContext(ctx).Info().Msg("detached")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "frames", line["component"])
	assert.Equal(t, "v1", line["frame_id"])
	assert.Equal(t, "detached", line["message"])
}

func TestFromContext_WithoutLoggerIsNoop(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	logger.Info().Msg("dropped")
}

func TestNew_WritesJSONToFileSink(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Format: "console", Output: &console, File: &file})

	logger.Debug().Msg("hidden")
	logger.Info().Str("frame_id", "v1").Msg("docked")

	assert.Contains(t, console.String(), "docked")

	var line map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &line))
	assert.Equal(t, "v1", line["frame_id"])
	assert.Equal(t, "info", line["level"])
}
