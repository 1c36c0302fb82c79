package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). Diagnostics go here; fixture output goes to stdout.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "fixtures",
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
