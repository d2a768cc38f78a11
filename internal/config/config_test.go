package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8000, cfg.AppPort)
		assert.Equal(t, StoreSQLite, cfg.StoreDriver)
		assert.Equal(t, 6, cfg.FreeMessageLimit)
		assert.Equal(t, 40*time.Millisecond, cfg.SimulatedWordDelay)
		assert.Equal(t, time.Minute, cfg.BackgroundTaskTimeout)
		assert.Equal(t, 4, cfg.ImageContextTurns)
		assert.Equal(t, 30, cfg.TitleMaxRunes)
		assert.Empty(t, cfg.GeminiAPIKey)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Chdir(t.TempDir())
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("FREE_MESSAGE_LIMIT", "2")
		t.Setenv("SIMULATED_WORD_DELAY", "0s")
		t.Setenv("GEMINI_API_KEY", "key")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, StoreMemory, cfg.StoreDriver)
		assert.Equal(t, 2, cfg.FreeMessageLimit)
		assert.Zero(t, cfg.SimulatedWordDelay)
		assert.Equal(t, "key", cfg.GeminiAPIKey)
	})

	t.Run("Invalid values", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Chdir(t.TempDir())
		t.Setenv("FREE_MESSAGE_LIMIT", "-1")
		t.Setenv("STORE_DRIVER", "postgres")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FREE_MESSAGE_LIMIT")
		assert.Contains(t, err.Error(), `unknown STORE_DRIVER "postgres"`)
	})
}
