package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "ledger.db", c.DatabasePath)
	assert.Equal(t, 4, c.Difficulty)
	assert.Equal(t, 30*time.Second, c.MiningTimeout)
	assert.Equal(t, int64(50), c.MiningReward)
	assert.False(t, c.GrantReward)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "X-Account-Number", c.AccountHeader)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MINING_DIFFICULTY", "2")
	t.Setenv("MINING_TIMEOUT", "5s")
	t.Setenv("GRANT_MINING_REWARD", "true")
	t.Setenv("LOG_LEVEL", "debug")

	require.NoError(t, Init())
	assert.Equal(t, "9090", GetPort())
	assert.Equal(t, 2, Get().Difficulty)
	assert.Equal(t, 5*time.Second, Get().MiningTimeout)
	assert.True(t, Get().GrantReward)

	logger, err := Get().NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"MINING_DIFFICULTY": "65",
		"MINING_REWARD":     "-1",
		"LOG_LEVEL":         "loud",
		"MINING_TIMEOUT":    "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
