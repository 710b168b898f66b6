package main

import (
	"log/slog"
	"os"
)

// InitLogger installs the process-wide slog handler. JSON output when
// LOG_FORMAT=json, text otherwise.
func InitLogger() {
	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
