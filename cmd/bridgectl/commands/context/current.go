package context

import (
	"fmt"

	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context",
	RunE:  runCurrent,
}

func runCurrent(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize context store: %w", err)
	}

	name := store.GetCurrentContextName()
	if name == "" {
		return fmt.Errorf("no current context set. Run 'bridgectl login' first")
	}

	ctx, err := store.GetCurrentContext()
	if err != nil {
		return err
	}

	fmt.Printf("Context:  %s\n", name)
	fmt.Printf("Endpoint: %s\n", ctx.ServerURL)
	return nil
}
