package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargoscope/cargoscope/internal/auth"
	"github.com/cargoscope/cargoscope/internal/config"
)

// NewTokenCmd creates the token command, which mints a service bearer token
// for the authenticated ops endpoints.
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a service token for the ops endpoints",
		RunE:  runToken,
	}

	cmd.Flags().String("service", "", "service name to embed as the token subject")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.SigningKey == "" {
		return errors.New("no signing key configured, set SERVICE_TOKEN_SIGNING_KEY or auth.signing_key")
	}

	serviceName, _ := cmd.Flags().GetString("service")

	tokens := auth.NewTokenService(auth.TokenConfig{
		SigningKey: cfg.Auth.SigningKey,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
	})

	token, expiresAt, err := tokens.Generate(serviceName)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
