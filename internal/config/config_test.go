package config_test

import (
	"testing"
	"time"

	testify "github.com/stretchr/testify/assert"

	"github.com/kode4food/flowcomm/internal/assert"
	"github.com/kode4food/flowcomm/internal/config"
)

func TestConfigValidation(t *testing.T) {
	as := assert.New(t)

	t.Run("valid_default_config", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		as.ConfigValid(cfg)
	})

	tests := []struct {
		name          string
		configMod     func(*config.Config)
		errorContains string
	}{
		{
			name: "invalid_api_port_zero",
			configMod: func(c *config.Config) {
				c.APIPort = 0
			},
			errorContains: "invalid API port",
		},
		{
			name: "invalid_api_port_too_high",
			configMod: func(c *config.Config) {
				c.APIPort = 70000
			},
			errorContains: "invalid API port",
		},
		{
			name: "invalid_log_level",
			configMod: func(c *config.Config) {
				c.LogLevel = "chatty"
			},
			errorContains: "invalid log level",
		},
		{
			name: "relative_home_url",
			configMod: func(c *config.Config) {
				c.HomeURL = "/home"
			},
			errorContains: "home URL must be absolute",
		},
		{
			name: "zero_shutdown_timeout",
			configMod: func(c *config.Config) {
				c.ShutdownTimeout = 0
			},
			errorContains: "shutdown timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tt.configMod(cfg)
			assert.New(t).ConfigInvalid(cfg, tt.errorContains)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HOME_URL", "http://www.avol.io/")
	t.Setenv("FLOW_DEBUG", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")

	cfg := config.NewDefaultConfig()
	testify.NoError(t, cfg.LoadFromEnv())

	testify.Equal(t, "127.0.0.1", cfg.APIHost)
	testify.Equal(t, 9090, cfg.APIPort)
	testify.Equal(t, "debug", cfg.LogLevel)
	testify.Equal(t, "http://www.avol.io/", cfg.HomeURL)
	testify.True(t, cfg.FlowDebug)
	testify.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.New(t).ConfigValid(cfg)
}

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"API_HOST", "API_PORT", "LOG_LEVEL", "HOME_URL", "FLOW_DEBUG",
		"SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := config.NewDefaultConfig()
	testify.NoError(t, cfg.LoadFromEnv())
	testify.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadFromEnvErrors(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "API_PORT", value: "not-a-number"},
		{key: "API_PORT", value: "0"},
		{key: "API_PORT", value: "70000"},
		{key: "SHUTDOWN_TIMEOUT", value: "-1"},
		{key: "FLOW_DEBUG", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := config.NewDefaultConfig()
			err := cfg.LoadFromEnv()
			testify.Error(t, err)
			testify.Contains(t, err.Error(), tt.key)
		})
	}
}
