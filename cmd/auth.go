package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/server"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Workspace",
		Long: `Run the OAuth2 authorization code flow from the command line.

  1. workspace-mcp auth url --services gmail,drive
  2. Open the printed URL and approve access.
  3. Copy the code parameter from the redirect URL.
  4. workspace-mcp auth exchange <code>
  5. Store the printed refresh token as REFRESH_TOKEN.

A URL printed by "auth url" must be completed with "auth exchange". The
/oauth2callback endpoint of a running server only accepts states that the
server issued itself, so it rejects redirects from this command. To use the
callback, call the generate_auth_url tool on the running server instead.`,
	}
	cmd.AddCommand(newAuthURLCmd())
	cmd.AddCommand(newAuthExchangeCmd())
	return cmd
}

func newAuthURLCmd() *cobra.Command {
	var (
		services string
		flags    configFlags
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print an authorization URL for the given services",
		Long: `Print an authorization URL for the given services.

Complete the flow with "auth exchange <code>". A running server's
/oauth2callback rejects redirects from this URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			provider := google.NewProvider(cfg.Credential(), google.WithLogger(quietLogger(cmd.ErrOrStderr())))
			return runAuthURL(cmd.OutOrStdout(), provider, parseCommaSeparatedList(services))
		},
	}

	cmd.Flags().StringVar(&services, "services", "", fmt.Sprintf("Comma-separated services to authorize (%s)", strings.Join(google.ServiceNames(), ", ")))
	_ = cmd.MarkFlagRequired("services")
	flags.register(cmd)
	return cmd
}

func newAuthExchangeCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "exchange <code>",
		Short: "Exchange an authorization code for tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			provider := google.NewProvider(cfg.Credential(), google.WithLogger(quietLogger(cmd.ErrOrStderr())))
			return runAuthExchange(cmd.Context(), cmd.OutOrStdout(), provider, args[0])
		},
	}

	flags.register(cmd)
	return cmd
}

func runAuthURL(out io.Writer, provider *google.Provider, services []string) error {
	scopes, err := google.ScopesFor(services...)
	if err != nil {
		return err
	}
	authURL, err := provider.AuthCodeURL(scopes)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, authURL)
	return nil
}

func runAuthExchange(ctx context.Context, out io.Writer, provider *google.Provider, code string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	tok, err := provider.Exchange(ctx, code)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, server.TokenInstructions(tok))
	return nil
}
