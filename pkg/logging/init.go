package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/pterm/pterm"
)

const (
	JSON  = "json"
	Text  = "text"
	Tint  = "tint"
	PTerm = "pterm"
)

// Initialize installs the default slog logger writing to w. Logs go to their own
// stream so they never interleave with the prompts on stdout.
func Initialize(loggingType string, logLevelName string, w io.Writer) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(logLevelName))
	if err != nil {
		return fmt.Errorf("could not parse log level: %v", err)
	}

	var (
		logHandlerOptions = slog.HandlerOptions{
			AddSource: true,
			Level:     logLevel,
		}
		logHandler slog.Handler
	)

	switch loggingType {
	case JSON:
		logHandler = slog.NewJSONHandler(w, &logHandlerOptions)
	case Text:
		logHandler = slog.NewTextHandler(w, &logHandlerOptions)
	case Tint:
		logHandler = tint.NewHandler(w, &tint.Options{
			AddSource: logHandlerOptions.AddSource,
			Level:     logHandlerOptions.Level,
		})
	case PTerm:
		logger := pterm.DefaultLogger.WithWriter(w).WithLevel(ptermLevel(logLevel))
		logHandler = pterm.NewSlogHandler(logger)
	default:
		return fmt.Errorf("unknown logging type: %s", loggingType)

	}

	slog.SetDefault(slog.New(logHandler))
	slog.Debug("logging initialized", "logLevel", logLevel)
	return nil
}

func ptermLevel(l slog.Level) pterm.LogLevel {
	switch {
	case l < slog.LevelInfo:
		return pterm.LogLevelDebug
	case l < slog.LevelWarn:
		return pterm.LogLevelInfo
	case l < slog.LevelError:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
