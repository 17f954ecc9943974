// Command cloud is a demonstration driver for the command dispatch engine.
//
// Configuration is read from the environment:
//
//	CLOUD_LOG_LEVEL   debug, info, warn, or error (default warn)
//	CLOUD_LOG_FILE    also write JSON logs to this file
//	CLOUD_HELP_WIDTH  help text width (default is the terminal width)
//	CLOUD_PROMPT      auto, always, or never print an interactive prompt
//	CLOUD_TIMEOUT     cancel a command that runs longer than this, like 30s
//	CLOUD_COLOR       set to "no" or "off" for plain log output
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/saylorsolutions/cloudcli/cli"
	"github.com/saylorsolutions/cloudcli/completion"
	"github.com/saylorsolutions/cloudcli/signalx"
	"github.com/saylorsolutions/cloudcli/slogx"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := loadConfig(envPrefix)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Invalid %s: %v\n", envPrefix.Key("LOG_LEVEL"), err)
	}
	level := new(slog.LevelVar)
	level.Set(cfg.LogLevel)
	handler := slogx.NewConsoleHandler(os.Stderr, level, slogx.WithColor(cfg.Color))
	if len(cfg.LogFile) > 0 {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			return 1
		}
		defer func() {
			_ = f.Close()
		}()
		handler = slogx.MergeHandlers(handler, slogx.NewFileHandler(f, level))
	}
	log := slog.New(slogx.NewDedupeHandler(handler)).With("prog", progName)

	app := newApp(os.Stdout,
		cli.WithAppLogger(log),
		cli.WithLevel(level),
		cli.WithAppWidth(cfg.HelpWidth),
	)
	if completion.IsRequest(args) {
		root := completion.Build(app.Name(), app.Tree(), app.ArgumentsFor)
		if err := completion.Respond(root, args, os.Stdout); err != nil {
			return 1
		}
		return 0
	}

	ctx, stop := signalx.SignalExitCtx(context.Background(), nil, os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.AddPreExec(func(_ context.Context, inv *cli.Invocation) error {
		inv.Log.Debug("Running command", "command", inv.Command.Path(), "args", inv.Args)
		return nil
	})
	if app.RespondInteractive(ctx, args, os.Stdin, cfg.Prompt) {
		return 0
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return app.Main(ctx, args)
}
