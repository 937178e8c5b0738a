package commands

import (
	"os"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <uri>",
	Short: "Print file contents",
	Long: `Print the entire content of a file to stdout.

Output is raw bytes, so binary files can be redirected to a local file.

Examples:
  # Print a text file
  bridgectl cat memfs:///notes/today.md

  # Download a binary file
  bridgectl cat local:///images/logo.png > logo.png`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	uri, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	data, err := fs.ReadFile(cmd.Context(), uri)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}
