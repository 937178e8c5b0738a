package commands

import (
	"fmt"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/internal/cli/prompt"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var (
	rmRecursive bool
	rmTrash     bool
	rmForce     bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <uri>",
	Short: "Delete a file or directory",
	Long: `Delete a file or directory.

Non-empty directories require --recursive. With --trash the provider is
asked to move the entry to its trash facility instead of deleting
permanently; providers without trash support delete anyway.

Examples:
  # Delete a file
  bridgectl rm memfs:///notes/today.md

  # Delete a directory and its contents
  bridgectl rm memfs:///notes --recursive

  # Move to trash without confirmation
  bridgectl rm local:///old-report.pdf --trash --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "Delete directories with their contents")
	rmCmd.Flags().BoolVar(&rmTrash, "trash", false, "Move to trash instead of deleting permanently")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	uri, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}

	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s?", uri), rmForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Cancelled.")
		return nil
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	opts := &wire.DeleteOptions{
		Recursive: rmRecursive,
		UseTrash:  rmTrash,
	}
	if err := fs.Delete(cmd.Context(), uri, opts); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", uri)
	return nil
}
