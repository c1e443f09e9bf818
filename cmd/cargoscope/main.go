// Package main provides the entrypoint for the cargoscope CLI.
package main

import (
	"os"

	"github.com/cargoscope/cargoscope/internal/cli"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	if err := cli.NewRootCmd(Version).Execute(); err != nil {
		os.Exit(1)
	}
}
