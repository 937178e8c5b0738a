package commands

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/marmos91/bridgefs/internal/cli/prompt"
	"github.com/marmos91/bridgefs/pkg/apiclient"
	"github.com/spf13/cobra"
)

var (
	loginServer  string
	loginToken   string
	loginNoToken bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect to a BridgeFS endpoint",
	Long: `Connect to a BridgeFS endpoint and store the connection context.

On first login, you must specify the endpoint URL. Subsequent logins will
use the stored URL unless overridden. The token is verified against the
endpoint before it is saved.

Examples:
  # First login to an endpoint
  bridgectl login --server http://localhost:9618

  # Login with token on command line (less secure)
  bridgectl login --server http://localhost:9618 --token secret

  # Re-login to stored endpoint
  bridgectl login`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Endpoint URL (required on first login)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token")
	loginCmd.Flags().BoolVar(&loginNoToken, "no-token", false, "Connect without authentication")
}

func runLogin(cmd *cobra.Command, args []string) error {
	// Load context store
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize context store: %w", err)
	}

	// Determine endpoint URL
	serverURLStr := loginServer
	if serverURLStr == "" {
		// Try to get from current context
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return fmt.Errorf("no endpoint URL specified and no saved context found\n\n" +
				"Specify endpoint URL:\n" +
				"  bridgectl login --server http://localhost:9618")
		}
		serverURLStr = ctx.ServerURL
	}

	// Validate endpoint URL
	parsedURL, err := url.Parse(serverURLStr)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
		serverURLStr = parsedURL.String()
	}

	// Get token (prompt if not provided)
	token := loginToken
	if token == "" && !loginNoToken {
		token, err = prompt.Password("Token (empty for none)")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	// Create endpoint client
	client := apiclient.New(serverURLStr)
	if token != "" {
		client = client.WithToken(token)
	}

	// Verify the connection by listing schemes
	fmt.Printf("Connecting to %s...\n", serverURLStr)
	verifyCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	schemes, err := client.Schemes(verifyCtx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	// Determine context name
	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURLStr)
	}

	// Save context
	ctx := &credentials.Context{
		ServerURL: serverURLStr,
		Token:     token,
	}

	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	fmt.Printf("Connected successfully (%d mounts available)\n", len(schemes))
	fmt.Printf("Context: %s\n", contextName)
	fmt.Printf("Context saved to: %s\n", store.ConfigPath())

	return nil
}
