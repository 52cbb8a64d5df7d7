package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger writes to a file because the terminal belongs to the editor.
// It discards everything until setupLogging is called with a path.
var logger = log.NewWithOptions(io.Discard, log.Options{Prefix: "gridedit"})

// setupLogging points logger at path. The returned closer must be closed on exit.
func setupLogging(path, level string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if path == "" {
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	logger = log.NewWithOptions(f, log.Options{
		Prefix:          "gridedit",
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	return f, nil
}
