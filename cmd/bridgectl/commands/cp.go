package commands

import (
	"fmt"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var cpOverwrite bool

var cpCmd = &cobra.Command{
	Use:   "cp <source-uri> <target-uri>",
	Short: "Copy a resource",
	Long: `Copy a file or directory to a new location within the same scheme.

Directories are copied recursively. Fails with a conflict if the target
exists, unless --overwrite is given.

Examples:
  # Copy a file
  bridgectl cp memfs:///a.txt memfs:///backup/a.txt

  # Replace an existing target
  bridgectl cp memfs:///a.txt memfs:///backup/a.txt --overwrite`,
	Args: cobra.ExactArgs(2),
	RunE: runCp,
}

func init() {
	cpCmd.Flags().BoolVar(&cpOverwrite, "overwrite", false, "Replace an existing target")
	rootCmd.AddCommand(cpCmd)
}

func runCp(cmd *cobra.Command, args []string) error {
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

	opts := &wire.CopyOptions{Overwrite: cpOverwrite}
	if err := fs.Copy(cmd.Context(), source, target, opts); err != nil {
		return err
	}

	fmt.Printf("Copied %s to %s\n", source, target)
	return nil
}
