package commands

import (
	"fmt"

	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored token",
	Long: `Clear the stored token for the current context.

This removes the bearer token but keeps the endpoint URL and context
configuration for easy re-login.

Examples:
  # Logout from current context
  bridgectl logout`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	// Load context store
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize context store: %w", err)
	}

	// Check if there's a current context
	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("not connected - no current context")
	}

	// Clear token for current context
	if err := store.ClearCurrentContext(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	fmt.Printf("Logged out from context: %s\n", contextName)
	return nil
}
