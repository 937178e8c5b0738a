package commands

import (
	"fmt"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var mvOverwrite bool

var mvCmd = &cobra.Command{
	Use:   "mv <source-uri> <target-uri>",
	Short: "Move or rename a resource",
	Long: `Move a file or directory to a new location within the same scheme.

Fails with a conflict if the target exists, unless --overwrite is given.

Examples:
  # Rename a file
  bridgectl mv memfs:///a.txt memfs:///b.txt

  # Replace an existing target
  bridgectl mv memfs:///a.txt memfs:///b.txt --overwrite`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

func init() {
	mvCmd.Flags().BoolVar(&mvOverwrite, "overwrite", false, "Replace an existing target")
	rootCmd.AddCommand(mvCmd)
}

func runMv(cmd *cobra.Command, args []string) error {
	source, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}
	target, err := wire.ParseURI(args[1])
	if err != nil {
		return err
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	opts := &wire.RenameOptions{Overwrite: mvOverwrite}
	if err := fs.Rename(cmd.Context(), source, target, opts); err != nil {
		return err
	}

	fmt.Printf("Moved %s to %s\n", source, target)
	return nil
}
