// Package cli implements the cargoscope command-line interface.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root Cobra command for the cargoscope CLI.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cargoscope",
		Short:   "Freight shipment emissions estimator",
		Long:    "CargoScope estimates greenhouse-gas emissions for freight shipments from shipment mass, route and transport method.",
		Version: version,
		Example: rootCmdExample,
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file overlaying the environment")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(NewEstimateCmd(), NewTokenCmd())

	return cmd
}

const rootCmdExample = `  # Estimate emissions for a request read from a file
  cargoscope estimate --input shipment.json

  # Estimate from stdin, pretty-printed
  cat shipment.json | cargoscope estimate --pretty

  # Use a config file for reference-data paths and Mapbox credentials
  cargoscope estimate --config cargoscope.yaml --input shipment.json

  # Mint a service token for the ops endpoints
  cargoscope token --service ops-dashboard`

// newLogger builds the CLI logger. Debug mode switches to human-readable
// console output on stderr.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
