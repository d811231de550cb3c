package svcutil

import (
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"
)

// ConfigLogger builds the default logger from the "log-level" and "log-format" flags.
func ConfigLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cctx.String("log-format")) == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
