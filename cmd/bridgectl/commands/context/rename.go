package context

import (
	"fmt"

	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a context",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize context store: %w", err)
	}

	oldName, newName := args[0], args[1]
	if err := store.RenameContext(oldName, newName); err != nil {
		return fmt.Errorf("failed to rename context: %w", err)
	}

	fmt.Printf("Renamed context %q to %q\n", oldName, newName)
	return nil
}
