// Package main is the entry point for the stackskit CLI.
package main

import (
	"os"

	"github.com/stackskit/stackskit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
