package logger_test

import (
	"testing"

	"survey-gateway/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("ProductionJSON", func(t *testing.T) {
		l, err := logger.New(&logger.Config{Level: "info", Format: "json"})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("DevelopmentConsole", func(t *testing.T) {
		l, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})
}
