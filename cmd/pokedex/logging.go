package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// parseLevel maps a configured level name to zerolog; unknown names fall back to info
func parseLevel(name string) (zerolog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OFF", "DISABLED", "NONE":
		return zerolog.Disabled, false
	case "TRACE":
		return zerolog.TraceLevel, true
	case "DEBUG":
		return zerolog.DebugLevel, true
	case "WARN", "WARNING":
		return zerolog.WarnLevel, true
	case "ERROR":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.InfoLevel, true
	}
}

// setupLogging opens the log file and builds the application logger
// The terminal belongs to the UI, so output only ever goes to the file
func setupLogging(level, path string) (zerolog.Logger, io.Closer, error) {
	lvl, enabled := parseLevel(level)
	if !enabled || path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	w := zerolog.ConsoleWriter{
		Out:        file,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	logger.Info().Str("loglevel", lvl.String()).Msg("Logging set up")
	return logger, file, nil
}
