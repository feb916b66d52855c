package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file with a few keys set
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nhttp-port: \"8081\"\nredis:\n  host: redis\n  session-ttl: 1h\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: file values and defaults are both applied
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.SessionTTL)
		assert.Equal(t, "results.db", conf.SQLiteStoragePath)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a config file and an environment variable for the same key
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("http-port: \"8081\"\n"), 0o600))
		t.Setenv("HTTP_PORT", "7070")

		// When: loading it
		conf := MustLoad(path)

		// Then: the environment wins
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestLoadOrEnv(t *testing.T) {
	t.Run("Missing file falls back to the environment", func(t *testing.T) {
		// Given: no config file and a log level in the environment
		t.Setenv("LOG_LEVEL", "debug")

		// When: loading from a path that does not exist
		conf, err := LoadOrEnv(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment and the defaults are used
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 24*time.Hour, conf.Redis.SessionTTL)
	})

	t.Run("Existing file is read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: warn\n"), 0o600))

		conf, err := LoadOrEnv(path)

		require.NoError(t, err)
		assert.Equal(t, "warn", conf.LogLevel)
	})

	t.Run("Broken file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("redis: [\n"), 0o600))

		_, err := LoadOrEnv(path)

		assert.Error(t, err)
	})
}
