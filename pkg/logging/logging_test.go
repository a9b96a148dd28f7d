package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/citecheck/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	assert.Contains(t, buf.String(), "info message")
	assert.Contains(t, buf.String(), "warning message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithStage(ctx, "sheet")
	ctx = logging.WithSheet(ctx, "2019")
	ctx = logging.WithCollection(ctx, "Keynotes")

	logging.FromContext(ctx).Info().Msg("parsed")

	testLogger.AssertContains(t, `"stage":"sheet"`)
	testLogger.AssertContains(t, `"sheet":"2019"`)
	testLogger.AssertContains(t, `"collection":"Keynotes"`)
	assert.Equal(t, 1, testLogger.Count())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // exercising the nil guard
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	tests := []struct {
		name    string
		level   string
		logged  []string
		dropped []string
	}{
		{"debug level", "debug", []string{"debug message", "info message"}, nil},
		{"warn level", "warn", []string{"warn message"}, []string{"info message"}},
		{"warning alias", "warning", []string{"warn message"}, []string{"info message"}},
		{"invalid falls back to info", "loud", []string{"info message"}, []string{"debug message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: path,
			})

			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, s := range tt.logged {
				assert.Contains(t, string(content), s)
			}
			for _, s := range tt.dropped {
				assert.NotContains(t, string(content), s)
			}
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:   "info",
		Format:  "console",
		Output:  path,
		NoColor: true,
	})
	logger.Info().Str("file", "esa_names.csv").Msg("wrote names")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "INF")
	assert.Contains(t, string(content), "wrote names")
}

func TestDiscardOutput(t *testing.T) {
	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Format: "auto", Output: "discard"})
	logger.Info().Msg("nowhere")
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Warn().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())
	assert.True(t, strings.HasPrefix(tl.Lines()[0], "{"))
}
