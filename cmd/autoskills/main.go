// Package main is the entry point for the autoskills CLI.
package main

import (
	"os"

	"github.com/thoreinstein/autoskills/cmd/autoskills/commands"
	"github.com/thoreinstein/autoskills/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
