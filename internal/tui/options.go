package tui

import "github.com/pablasso/taskdeck/internal/store"

// Options configures TUI startup behavior.
type Options struct {
	// Store is the task store the UI drives. Required.
	Store *store.Store
	// Filter is the filter applied before the first render.
	Filter string
}
