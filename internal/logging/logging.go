// Package logging routes the standard logger to a file so that log output
// never lands on the terminal while the TUI owns it.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

const prefix = "taskdeck "

var debug atomic.Bool

// Setup points the standard logger at path. An empty path discards all
// output. When tui is true the file is opened through tea.LogToFile.
// The returned closer must be called on shutdown.
func Setup(path string, debugEnabled, tui bool) (io.Closer, error) {
	debug.Store(debugEnabled)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if path == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	if tui {
		f, err := tea.LogToFile(path, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, nil
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	return f, nil
}

// DebugEnabled reports whether debug logging is on.
func DebugEnabled() bool {
	return debug.Load()
}

// SetDebug toggles debug logging.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// Debugf logs a formatted message only when debug logging is on.
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Printf("DEBUG "+format, args...)
	}
}

// Infof always logs.
func Infof(format string, args ...any) {
	log.Printf("INFO "+format, args...)
}

// Errorf always logs.
func Errorf(format string, args ...any) {
	log.Printf("ERROR "+format, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
