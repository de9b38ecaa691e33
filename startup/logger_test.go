package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/startup/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("development uses text output", func(t *testing.T) {
		logger, err := NewLogger(&config.Config{Environment: "development"})
		require.NoError(t, err)
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
		assert.Equal(t, logrus.DebugLevel, logger.Level)
	})

	t.Run("production uses json output", func(t *testing.T) {
		logger, err := NewLogger(&config.Config{Environment: "production"})
		require.NoError(t, err)
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
		assert.Equal(t, logrus.InfoLevel, logger.Level)
	})

	t.Run("log file is written", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.log")
		logger, err := NewLogger(&config.Config{Environment: "production", LogFile: path})
		require.NoError(t, err)

		logger.Info("hello")

		matches, err := filepath.Glob(path + "_*")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		content, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.Contains(t, string(content), "hello")
	})
}

func TestInitTracerWithoutCollector(t *testing.T) {
	tracer, shutdown, err := initTracer("")
	require.NoError(t, err)
	require.NotNil(t, tracer)
	assert.NoError(t, shutdown())
}
