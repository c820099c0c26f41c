package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-beans/framework/config"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "go-beans"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "json"},
		{"Metrics.Enabled", cfg.Metrics.Enabled, true},
		{"Metrics.Path", cfg.Metrics.Path, "/metrics"},
		{"Network.URL", cfg.Network.URL, "http://hello-spring.dev"},
		{"Discount.Policy", cfg.Discount.Policy, "rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("NETWORK_URL", "http://localhost:9999")
	t.Setenv("METRICS_PATH", "/internal/metrics")

	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "http://localhost:9999", cfg.Network.URL)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	// godotenv.Load never overrides variables that are already set.
	for _, k := range []string{"APP_NAME", "LOG_LEVEL", "LOG_FORMAT", "DISCOUNT_POLICY", "METRICS_ENABLED"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := config.Load("testdata/app.env")

	assert.Equal(t, "order-api", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level, "levels are normalised to lower case")
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "fix", cfg.Discount.Policy)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_MissingEnvFileIsNotFatal(t *testing.T) {
	assert.NotPanics(t, func() { config.Load("testdata/does-not-exist.env") })
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	os.Unsetenv("MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
