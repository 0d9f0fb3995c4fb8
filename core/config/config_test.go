package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/core/config"
)

type appConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"landing"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
	Port    int           `env:"CONFIG_TEST_PORT" envDefault:"8000"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "demo")
	t.Setenv("CONFIG_TEST_PORT", "9000")
	config.Reset()
	t.Cleanup(config.Reset)

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_NAME", "changed")

		var again appConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, cfg, again)
	})

	t.Run("reset re-reads environment", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_NAME", "changed")
		config.Reset()

		var fresh appConfig
		require.NoError(t, config.Load(&fresh))
		assert.Equal(t, "changed", fresh.Name)
	})
}

func TestLoadRequired(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	var cfg requiredConfig
	assert.Error(t, config.Load(&cfg))
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	t.Setenv("CONFIG_TEST_SECRET", "s3cret")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("CONFIG_TEST_PORT", "not-a-number")
	config.Reset()
	t.Cleanup(config.Reset)

	var cfg appConfig
	assert.Error(t, config.Load(&cfg))
}
