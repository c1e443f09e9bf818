package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cargoscope/cargoscope/internal/config"
	"github.com/cargoscope/cargoscope/internal/emissions"
	geocodemapbox "github.com/cargoscope/cargoscope/internal/geocode/mapbox"
	"github.com/cargoscope/cargoscope/internal/location"
	"github.com/cargoscope/cargoscope/internal/refdata"
	routingmapbox "github.com/cargoscope/cargoscope/internal/routing/mapbox"
)

// NewEstimateCmd creates the estimate command. It reads an estimation request
// as JSON, runs the full computation locally and prints the result.
func NewEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute emissions for a shipment request",
		Long: "Reads an estimation request as JSON from a file or stdin, loads the " +
			"reference datasets, resolves locations, computes the route distance " +
			"and prints the emissions estimate as JSON.",
		RunE: runEstimate,
	}

	cmd.Flags().StringP("input", "i", "-", "request JSON file, or - for stdin")
	cmd.Flags().Bool("pretty", false, "indent the JSON output")

	return cmd
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	req, err := readRequest(cmd)
	if err != nil {
		return err
	}

	tables, err := refdata.LoadCSV(refdata.CSVConfig{
		LocodePath:    cfg.Refdata.LocodePath,
		AirportPath:   cfg.Refdata.AirportPath,
		FactorPath:    cfg.Refdata.FactorPath,
		IntensityPath: cfg.Refdata.IntensityPath,
	})
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}

	resolverCfg := location.ResolverConfig{
		Locodes:  tables.Locodes,
		Airports: tables.Airports,
		Logger:   logger,
	}
	serviceCfg := emissions.ServiceConfig{
		Factors:   tables.Factors,
		Intensity: tables.Intensity,
		Logger:    logger,
	}

	// Address geocoding and road routing need Mapbox credentials. Without
	// them, estimates still work for coordinate, locode and airport inputs.
	if cfg.Mapbox.AccessToken != "" {
		resolverCfg.Geocoder = geocodemapbox.NewClient(geocodemapbox.ClientConfig{
			AccessToken: cfg.Mapbox.AccessToken,
			BaseURL:     cfg.Mapbox.BaseURL,
			Logger:      logger,
		})
		serviceCfg.Router = routingmapbox.NewClient(routingmapbox.ClientConfig{
			AccessToken: cfg.Mapbox.AccessToken,
			BaseURL:     cfg.Mapbox.BaseURL,
			Logger:      logger,
		})
	} else {
		logger.Debug().Msg("no mapbox token configured, geocoding and road routing disabled")
	}

	serviceCfg.Resolver = location.NewResolver(resolverCfg)
	estimator := emissions.NewService(serviceCfg)

	result, err := estimator.Estimate(cmd.Context(), req)
	if err != nil {
		return err
	}

	return writeResult(cmd, result)
}

func readRequest(cmd *cobra.Command) (emissions.Request, error) {
	input, _ := cmd.Flags().GetString("input")

	var reader io.Reader
	if input == "-" {
		reader = cmd.InOrStdin()
	} else {
		f, err := os.Open(input)
		if err != nil {
			return emissions.Request{}, fmt.Errorf("opening request file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var req emissions.Request
	if err := json.NewDecoder(reader).Decode(&req); err != nil {
		return emissions.Request{}, fmt.Errorf("decoding request JSON: %w", err)
	}
	return req, nil
}

func writeResult(cmd *cobra.Command, result *emissions.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
