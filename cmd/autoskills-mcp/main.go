// Package main runs the autoskills MCP server over stdio. It is equivalent
// to "autoskills serve" and exists so agent runtimes can launch the server
// without arguments.
package main

import (
	"os"

	"github.com/thoreinstein/autoskills/cmd/autoskills/commands"
	"github.com/thoreinstein/autoskills/internal/errors"
)

func main() {
	if err := commands.Execute(append([]string{"serve"}, os.Args[1:]...)...); err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
