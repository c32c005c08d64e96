package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromVerbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbosity int
		want      LogLevel
	}{
		{"verbose_1_error", 1, ErrorLevel},
		{"verbose_2_warn", 2, WarnLevel},
		{"verbose_3_info", 3, InfoLevel},
		{"verbose_4_debug", 4, DebugLevel},
		{"verbose_5_trace", 5, TraceLevel},
		{"verbose_0_clamped_to_1", 0, ErrorLevel},
		{"verbose_100_clamped_to_5", 100, TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LevelFromVerbosity(tt.verbosity))
		})
	}
}

// Mutates zerolog globals, so not parallel
func TestInitializeLogger_WritesComponent(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	InitializeLogger(DebugLevel, &buf)

	logger := GetLogger("test-component")
	logger.Debug().Msg("hello")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "test-component")
	assert.Contains(t, buf.String(), "hello")
}

// Mutates zerolog globals, so not parallel
func TestGetLevelLogger_FiltersBelowLevel(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	InitializeLogger(TraceLevel, &buf)
	buf.Reset()

	logger := GetLevelLogger("lvl", InfoLevel)
	logger.Trace().Msg("trace-hidden")
	logger.Debug().Msg("debug-hidden")
	logger.Info().Msg("info-shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "info-shown")
}

func TestGetLogger_SilentBeforeInitialize(t *testing.T) {
	restoreLogger(t)
	nop := zerolog.Nop()
	base.Store(&nop)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := GetLevelLogger("quiet", TraceLevel)
	logger.Error().Msg("should not appear")

	assert.Empty(t, buf.String(), "component loggers must not fall back to the global logger")
}

// restoreLogger puts the logging globals back after a test mutates them
func restoreLogger(t *testing.T) {
	t.Helper()
	prevLvl, prevLogger, prevBase := zerolog.GlobalLevel(), log.Logger, base.Load()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLvl)
		log.Logger = prevLogger
		base.Store(prevBase)
	})
}
