package commands

import (
	"os"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls <uri>",
	Short: "List directory contents",
	Long: `List the children of a directory as (name, type) pairs.

Examples:
  # List a directory
  bridgectl ls memfs:///notes

  # Output as JSON
  bridgectl ls memfs:///notes -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

// entryRow holds one directory entry for table display.
type entryRow struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EntryList is a directory listing for table rendering.
type EntryList []entryRow

// Headers implements TableRenderer.
func (el EntryList) Headers() []string {
	return []string{"NAME", "TYPE"}
}

// Rows implements TableRenderer.
func (el EntryList) Rows() [][]string {
	rows := make([][]string, 0, len(el))
	for _, e := range el {
		rows = append(rows, []string{e.Name, e.Type})
	}
	return rows
}

func runLs(cmd *cobra.Command, args []string) error {
	uri, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDirectory(cmd.Context(), uri)
	if err != nil {
		return err
	}

	rows := make(EntryList, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entryRow{Name: e.Name, Type: e.Type.String()})
	}

	return cmdutil.PrintOutput(os.Stdout, rows, len(rows) == 0, "Empty directory.", rows)
}
