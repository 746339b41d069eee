// Package main is the entry point for the gitsignals CLI.
package main

import (
	"os"

	"github.com/gitsignals/gitsignals/cmd"
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/internal/history"
)

func main() {
	err := cmd.Execute()

	// Close history storage before deciding the exit code, since
	// os.Exit would skip deferred cleanup.
	history.CloseHistory()

	if err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
