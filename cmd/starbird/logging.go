package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starbird/internal/config"
)

// openLogger returns a logger writing to the log file. The terminal
// belongs to the game, so logs never go to stdout. The returned func
// closes the file.
func openLogger(prefix string) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	path := flagLogFile
	if path == "" {
		if dir := config.UserDir(); dir != "" {
			path = filepath.Join(dir, "starbird.log")
		}
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		//nolint:errcheck // Best-effort directory creation
		os.MkdirAll(filepath.Dir(path), 0o755)
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", openErr)
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}
