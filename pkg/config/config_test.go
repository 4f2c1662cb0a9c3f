package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formlab/pkg/config"
)

type appConfig struct {
	Name  string        `env:"FORMLAB_TEST_NAME" envDefault:"formlab"`
	Delay time.Duration `env:"FORMLAB_TEST_DELAY" envDefault:"2s"`
	Tags  []string      `env:"FORMLAB_TEST_TAGS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"FORMLAB_TEST_SECRET,required"`
}

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, "FORMLAB_TEST_NAME", "FORMLAB_TEST_DELAY", "FORMLAB_TEST_TAGS")
	config.Reset()

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "formlab", cfg.Name)
	assert.Equal(t, 2*time.Second, cfg.Delay)
	assert.Empty(t, cfg.Tags)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FORMLAB_TEST_NAME", "from-env")
	t.Setenv("FORMLAB_TEST_DELAY", "10ms")
	config.Reset()

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 10*time.Millisecond, cfg.Delay)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("FORMLAB_TEST_NAME", "first")
	config.Reset()

	var first appConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("FORMLAB_TEST_NAME", "second")
	var second appConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Name)

	config.Reset()
	var third appConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Name)
}

func TestLoad_Errors(t *testing.T) {
	unset(t, "FORMLAB_TEST_SECRET")
	config.Reset()

	assert.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	t.Setenv("FORMLAB_TEST_SECRET", "s3cret")
	assert.NotPanics(t, func() { config.MustLoad(&cfg) })
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoadEnv(t *testing.T) {
	unset(t, "FORMLAB_TEST_DELAY", "FORMLAB_TEST_TAGS")
	t.Setenv("FORMLAB_TEST_NAME", "kept")
	config.Reset()

	require.NoError(t, config.LoadEnv("testdata/app.env"))
	t.Cleanup(func() {
		_ = os.Unsetenv("FORMLAB_TEST_DELAY")
		_ = os.Unsetenv("FORMLAB_TEST_TAGS")
	})

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "kept", cfg.Name)
	assert.Equal(t, 750*time.Millisecond, cfg.Delay)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnv)
}
