package server

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig()
	cfg.Env = "production"
	cfg.LogLevel = "warn"

	log := newLogger(cfg, &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("room", "r1").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "r1", entry["room"])
	assert.Equal(t, "moodsync", entry["service"])
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig()
	cfg.Env = "production"
	cfg.LogLevel = "chatty"

	log := newLogger(cfg, &buf)
	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}
