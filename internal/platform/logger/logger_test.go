package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "debug")
	l.Debug().Str("title", "Dune").Msg("inserted book metadata")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Dune", entry["title"])
	assert.Equal(t, "inserted book metadata", entry["message"])
}

func TestNew_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production", "nonsense")
	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "development", "info")
	l.Info().Str("author", "Herbert").Msg("inserted new author")

	assert.Contains(t, buf.String(), "inserted new author")
	assert.Contains(t, buf.String(), "Herbert")
}

func TestNew_LeavesGlobalsAlone(t *testing.T) {
	globalLevel := zerolog.GlobalLevel()
	timeFormat := zerolog.TimeFieldFormat
	globalLogger := log.Logger

	var buf bytes.Buffer
	l := New(&buf, "production", "error")

	assert.Equal(t, zerolog.ErrorLevel, l.GetLevel())
	assert.Equal(t, globalLevel, zerolog.GlobalLevel())
	assert.Equal(t, timeFormat, zerolog.TimeFieldFormat)
	assert.Equal(t, globalLogger, log.Logger)
}

func TestInit_SetsGlobals(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevFormat := zerolog.TimeFieldFormat
	prevLogger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		zerolog.TimeFieldFormat = prevFormat
		log.Logger = prevLogger
	})

	l := Init("production", "warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, l, log.Logger)
}
