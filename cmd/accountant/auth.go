package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/config"
	"github.com/Veraticus/accountant/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())
	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Print a URL to open in your browser
2. Wait for Google to redirect back to a local callback server
3. Save the token to sheets.token_file for "accountant export --format sheets"

You'll need to run this once to set up Google Sheets integration.`,
		Args: cobra.NoArgs,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("addr", sheets.DefaultCallbackAddr, "address for the local callback server")
	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadSheetsConfig(nil)

	if v, _ := cmd.Flags().GetString("client-id"); v != "" {
		cfg.ClientID = v
	}
	if v, _ := cmd.Flags().GetString("client-secret"); v != "" {
		cfg.ClientSecret = v
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return common.NewUserError(
			"OAuth2 client credentials missing. Set sheets.client_id and sheets.client_secret or pass --client-id and --client-secret",
			common.ErrMissingConfig)
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = config.ExpandPath("~/.config/accountant/sheets-token.json")
	}

	addr, _ := cmd.Flags().GetString("addr")
	out := cmd.OutOrStdout()

	_, err := sheets.AuthenticateInteractive(cmd.Context(), cfg, addr, func(url string) {
		fmt.Fprintln(out, cli.FormatInfo("Open this URL in your browser to authorize access:"))
		fmt.Fprintln(out, url)
	})
	if err != nil {
		return fmt.Errorf("google sheets authentication failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("Token saved to "+cfg.TokenFile))
	return nil
}
