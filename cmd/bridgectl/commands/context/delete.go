package context

import (
	"fmt"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/marmos91/bridgefs/internal/cli/prompt"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize context store: %w", err)
	}

	name := args[0]
	if _, err := store.GetContext(name); err != nil {
		return err
	}

	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete context %q?", name), deleteForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := store.DeleteContext(name); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	fmt.Printf("Deleted context: %s\n", name)
	return nil
}
