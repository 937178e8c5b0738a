package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/spf13/cobra"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List mounted schemes",
	Long: `List the URI schemes exposed by the endpoint and their access mode.

Examples:
  # List schemes as table
  bridgectl schemes

  # List as JSON
  bridgectl schemes -o json`,
	RunE: runSchemes,
}

func init() {
	rootCmd.AddCommand(schemesCmd)
}

// schemeRow holds resolved scheme info for table display.
type schemeRow struct {
	Scheme string `json:"scheme"`
	Access string `json:"access"`
}

// SchemeList is a list of schemes for table rendering.
type SchemeList []schemeRow

// Headers implements TableRenderer.
func (sl SchemeList) Headers() []string {
	return []string{"SCHEME", "ACCESS"}
}

// Rows implements TableRenderer.
func (sl SchemeList) Rows() [][]string {
	rows := make([][]string, 0, len(sl))
	for _, s := range sl {
		rows = append(rows, []string{s.Scheme, s.Access})
	}
	return rows
}

func runSchemes(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.NewClient()
	if err != nil {
		return err
	}

	schemes, err := client.Schemes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list schemes: %w", err)
	}

	rows := make(SchemeList, 0, len(schemes))
	for _, s := range schemes {
		access := "read-write"
		if s.Readonly {
			access = "read-only"
		}
		rows = append(rows, schemeRow{Scheme: s.Scheme, Access: access})
	}

	return cmdutil.PrintOutput(os.Stdout, rows, len(rows) == 0, "No schemes mounted.", rows)
}
