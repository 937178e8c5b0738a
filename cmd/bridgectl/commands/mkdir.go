package commands

import (
	"fmt"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <uri>",
	Short: "Create a directory",
	Long: `Create a new directory.

Examples:
  # Create a directory
  bridgectl mkdir memfs:///notes/archive`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
}

func runMkdir(cmd *cobra.Command, args []string) error {
	uri, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	if err := fs.CreateDirectory(cmd.Context(), uri); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", uri)
	return nil
}
