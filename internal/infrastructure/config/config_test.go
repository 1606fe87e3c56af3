package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SALESBOARD_APP_NAME":                 os.Getenv("SALESBOARD_APP_NAME"),
		"SALESBOARD_APP_ENV":                  os.Getenv("SALESBOARD_APP_ENV"),
		"SALESBOARD_APP_PORT":                 os.Getenv("SALESBOARD_APP_PORT"),
		"SALESBOARD_LEDGER_SOURCE_PATH":       os.Getenv("SALESBOARD_LEDGER_SOURCE_PATH"),
		"SALESBOARD_LEDGER_SHEET_NAME":        os.Getenv("SALESBOARD_LEDGER_SHEET_NAME"),
		"SALESBOARD_LOG_LEVEL":                os.Getenv("SALESBOARD_LOG_LEVEL"),
		"SALESBOARD_LOG_FORMAT":               os.Getenv("SALESBOARD_LOG_FORMAT"),
		"SALESBOARD_HTTP_CORS_ALLOW_ORIGINS":  os.Getenv("SALESBOARD_HTTP_CORS_ALLOW_ORIGINS"),
		"SALESBOARD_TELEMETRY_SAMPLING_RATIO": os.Getenv("SALESBOARD_TELEMETRY_SAMPLING_RATIO"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "salesboard-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "ledger.xlsx", cfg.Ledger.SourcePath)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "stdout", cfg.Log.Output)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	})

	t.Run("loads values from environment variables with SALESBOARD prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SALESBOARD_APP_NAME", "test-app")
		os.Setenv("SALESBOARD_APP_ENV", "testing")
		os.Setenv("SALESBOARD_APP_PORT", "9000")
		os.Setenv("SALESBOARD_LEDGER_SOURCE_PATH", "/data/sales.xlsx")
		os.Setenv("SALESBOARD_LEDGER_SHEET_NAME", "Ledger")
		os.Setenv("SALESBOARD_LOG_LEVEL", "debug")
		os.Setenv("SALESBOARD_LOG_FORMAT", "json")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "/data/sales.xlsx", cfg.Ledger.SourcePath)
		assert.Equal(t, "Ledger", cfg.Ledger.SheetName)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("rejects unsupported ledger source extension", func(t *testing.T) {
		clearEnv()
		os.Setenv("SALESBOARD_LEDGER_SOURCE_PATH", "/data/sales.pdf")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ledger.source_path")
	})

	t.Run("accepts csv ledger source", func(t *testing.T) {
		clearEnv()
		os.Setenv("SALESBOARD_LEDGER_SOURCE_PATH", "/data/sales.csv")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/data/sales.csv", cfg.Ledger.SourcePath)
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		clearEnv()
		os.Setenv("SALESBOARD_LOG_FORMAT", "xml")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})

	t.Run("rejects sampling ratio outside range", func(t *testing.T) {
		clearEnv()
		os.Setenv("SALESBOARD_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"SALESBOARD_APP_ENV":                 os.Getenv("SALESBOARD_APP_ENV"),
		"SALESBOARD_HTTP_CORS_ALLOW_ORIGINS": os.Getenv("SALESBOARD_HTTP_CORS_ALLOW_ORIGINS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		os.Setenv("SALESBOARD_APP_ENV", "production")
		os.Setenv("SALESBOARD_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		os.Setenv("SALESBOARD_APP_ENV", "production")
		os.Unsetenv("SALESBOARD_HTTP_CORS_ALLOW_ORIGINS")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}
