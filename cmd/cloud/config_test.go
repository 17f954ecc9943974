package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/saylorsolutions/cloudcli/cli"
	"github.com/saylorsolutions/cloudcli/slogx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CLOUD_LOG_LEVEL", "debug")
	t.Setenv("CLOUD_LOG_FILE", "/tmp/cloud.log")
	t.Setenv("CLOUD_HELP_WIDTH", "100")
	t.Setenv("CLOUD_PROMPT", "NEVER")
	t.Setenv("CLOUD_TIMEOUT", "5s")
	t.Setenv("CLOUD_COLOR", "off")

	cfg, err := loadConfig(envPrefix)
	require.NoError(t, err)
	assert.Equal(t, config{
		LogLevel:  slog.LevelDebug,
		LogFile:   "/tmp/cloud.log",
		HelpWidth: 100,
		Prompt:    cli.PromptNever,
		Timeout:   5 * time.Second,
		Color:     false,
	}, cfg)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CLOUD_LOG_LEVEL", "")
	t.Setenv("CLOUD_HELP_WIDTH", "60")
	t.Setenv("CLOUD_PROMPT", "sometimes")
	t.Setenv("CLOUD_TIMEOUT", "soon")
	t.Setenv("CLOUD_COLOR", "maybe")

	cfg, err := loadConfig(envPrefix)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, cli.PromptAuto, cfg.Prompt)
	assert.Zero(t, cfg.Timeout)
	assert.True(t, cfg.Color)
}

func TestLoadConfig_BadLevel(t *testing.T) {
	t.Setenv("CLOUD_LOG_LEVEL", "loud")
	t.Setenv("CLOUD_HELP_WIDTH", "60")

	cfg, err := loadConfig(envPrefix)
	assert.ErrorIs(t, err, slogx.ErrLevel)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 60, cfg.HelpWidth)
}
