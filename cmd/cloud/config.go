package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/saylorsolutions/cloudcli/cli"
	"github.com/saylorsolutions/cloudcli/env"
	"github.com/saylorsolutions/cloudcli/slogx"
)

const envPrefix env.Prefix = "CLOUD_"

var promptModes = map[string]cli.PromptMode{
	"auto":   cli.PromptAuto,
	"always": cli.PromptAlways,
	"never":  cli.PromptNever,
}

// config is read from CLOUD_ prefixed environment variables.
type config struct {
	LogLevel  slog.Level
	LogFile   string
	HelpWidth int
	Prompt    cli.PromptMode
	Timeout   time.Duration
	Color     bool
}

// loadConfig reads the environment. An unknown log level is reported, and the default level is used.
func loadConfig(prefix env.Prefix) (config, error) {
	cfg := config{
		LogFile:   prefix.Val("LOG_FILE", ""),
		HelpWidth: int(prefix.Int("HELP_WIDTH", 0)),
		Prompt:    promptModes[prefix.OneOf("PROMPT", "auto", "auto", "always", "never")],
		Timeout:   prefix.Duration("TIMEOUT", 0),
		Color:     prefix.Bool("COLOR", true),
		LogLevel:  slog.LevelWarn,
	}
	if cfg.HelpWidth <= 0 {
		cfg.HelpWidth = cli.TerminalWidth(cli.DefaultHelpWidth)
	}
	raw := strings.TrimSpace(prefix.Val("LOG_LEVEL", ""))
	if len(raw) == 0 {
		return cfg, nil
	}
	level, err := slogx.ParseLevel(raw)
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = level
	return cfg, nil
}
