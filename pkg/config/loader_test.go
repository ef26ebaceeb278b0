package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/letterdrop/pkg/config"
)

// Each subtest uses its own type: Load caches per configuration type for
// the life of the process.

func TestLoad(t *testing.T) {
	t.Run("defaults apply when env is empty", func(t *testing.T) {
		type defaultsConfig struct {
			Addr    string `env:"TEST_LOADER_ADDR" envDefault:":8080"`
			Debug   bool   `env:"TEST_LOADER_DEBUG" envDefault:"false"`
			Retries int    `env:"TEST_LOADER_RETRIES" envDefault:"3"`
		}

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.Debug)
		assert.Equal(t, 3, cfg.Retries)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		type overrideConfig struct {
			Addr  string `env:"TEST_LOADER_OVERRIDE_ADDR" envDefault:":8080"`
			Debug bool   `env:"TEST_LOADER_OVERRIDE_DEBUG" envDefault:"false"`
		}
		t.Setenv("TEST_LOADER_OVERRIDE_ADDR", ":9999")
		t.Setenv("TEST_LOADER_OVERRIDE_DEBUG", "true")

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9999", cfg.Addr)
		assert.True(t, cfg.Debug)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		type requiredConfig struct {
			Token string `env:"TEST_LOADER_REQUIRED_TOKEN,required"`
		}

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		type nilConfig struct {
			Addr string `env:"TEST_LOADER_NIL_ADDR"`
		}

		err := config.Load[nilConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("second load returns the cached value", func(t *testing.T) {
		type cachedConfig struct {
			Addr string `env:"TEST_LOADER_CACHED_ADDR" envDefault:":8080"`
		}
		t.Setenv("TEST_LOADER_CACHED_ADDR", ":1111")

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		require.Equal(t, ":1111", first.Addr)

		t.Setenv("TEST_LOADER_CACHED_ADDR", ":2222")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, ":1111", second.Addr, "cached value must win over a changed environment")
	})
}
