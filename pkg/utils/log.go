package utils

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"
)

type LogHandlerType string

const (
	HandlerTypeText LogHandlerType = "text"
	HandlerTypeJSON LogHandlerType = "json"
)

var (
	handlerTypeFlag = flag.String("log_handler_type", string(HandlerTypeJSON), "Log handler type: json/text")
	logLevelFlag    = flag.String("log_level", "info", "Log level: debug/info/warn/error")
)

// newLogHandler builds a slog handler writing to `out`. Unknown levels or handler types raise an invariant and fall
// back to info / json.
func newLogHandler(out io.Writer, handlerType LogHandlerType, logLevel string) slog.Handler {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		RaiseInvariant("log", "unsupported_log_level", "Got an unsupported log level.",
			"logLevel", logLevel, "error", err)
		level = slog.LevelInfo
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	switch handlerType {
	case HandlerTypeJSON:
		return slog.NewJSONHandler(out, handlerOptions)
	case HandlerTypeText:
		return slog.NewTextHandler(out, handlerOptions)
	default:
		RaiseInvariant("log", "unsupported_handler_type", "Got an unsupported handler type.",
			"handlerType", handlerType)
		return slog.NewJSONHandler(out, handlerOptions)
	}
}

// InitLogging configures the default slog logger from the logging flags. It must be called after flags are parsed.
func InitLogging() {
	handlerType := LogHandlerType(strings.ToLower(*handlerTypeFlag))
	// `SetDefault` happens atomically and doesn't panic when called in multiple goroutines.
	slog.SetDefault(slog.New(newLogHandler(os.Stderr, handlerType, *logLevelFlag)))
	slog.Debug("Log handler configured successfully.", "type", handlerType, "logLevel", *logLevelFlag)
}
