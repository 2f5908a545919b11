package main

import (
	"os"

	"github.com/pablasso/taskdeck/internal/cli"
)

func main() {
	// With no command the root opens the TUI; otherwise it routes to a subcommand.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
