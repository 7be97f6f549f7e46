package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuptool/cuptool/internal/auth"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the ClickUp credential",
		Long: `Manage the ClickUp credential used by all other commands.

Two flows are supported:
  - auth login saves a personal API token (from the ClickUp app under
    Settings > Apps).
  - auth exchange runs the OAuth2 authorization-code flow for a
    registered ClickUp OAuth app.

The CLICKUP_TOKEN environment variable always overrides the cached
token.`,
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthExchangeCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a personal API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				fmt.Fprint(os.Stderr, "ClickUp personal API token: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}

			if err := auth.SaveToken(token); err != nil {
				return err
			}

			path, err := auth.TokenFilePath()
			if err != nil {
				return err
			}
			fmt.Printf("Token saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "The personal API token (prompted for when omitted)")

	return cmd
}

func newAuthExchangeCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
		code         string
		redirectURL  string
	)

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an OAuth2 authorization code for an access token",
		Long: `Exchange an OAuth2 authorization code for an access token and cache it.

Without --code, prints the browser URL where the user approves access;
after approval ClickUp redirects to the app's redirect URL with a
?code= parameter to pass back via --code.

ClickUp access tokens do not expire, so the exchange only has to be
done once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				fmt.Println("Visit this URL in your browser to approve access:")
				fmt.Printf("\n  %s\n\n", auth.AuthCodeURL(clientID, redirectURL))
				fmt.Println("Then re-run with --code <authorization code>.")
				return nil
			}

			if err := auth.ExchangeAndSave(cmd.Context(), clientID, clientSecret, code); err != nil {
				return err
			}

			path, err := auth.TokenFilePath()
			if err != nil {
				return err
			}
			fmt.Printf("Token saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth app client ID (required)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth app client secret (required with --code)")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the redirect URL")
	cmd.Flags().StringVar(&redirectURL, "redirect-url", "", "The OAuth app's registered redirect URL")
	_ = cmd.MarkFlagRequired("client-id")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the cached token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Cached token removed.")
			return nil
		},
	}
}
