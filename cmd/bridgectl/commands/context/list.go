package context

import (
	"fmt"
	"os"
	"sort"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured contexts",
	Long: `List all configured endpoint contexts.

The current context is marked with an asterisk.

Examples:
  # List contexts as table
  bridgectl context list

  # List as JSON
  bridgectl context list -o json`,
	RunE: runList,
}

// contextRow holds resolved context info for display.
type contextRow struct {
	Current   bool   `json:"current"`
	Name      string `json:"name"`
	ServerURL string `json:"server_url"`
	HasToken  bool   `json:"has_token"`
}

// ContextList is a list of contexts for table rendering.
type ContextList []contextRow

// Headers implements TableRenderer.
func (cl ContextList) Headers() []string {
	return []string{"", "NAME", "ENDPOINT", "TOKEN"}
}

// Rows implements TableRenderer.
func (cl ContextList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		marker := ""
		if c.Current {
			marker = "*"
		}
		token := "no"
		if c.HasToken {
			token = "yes"
		}
		rows = append(rows, []string{marker, c.Name, c.ServerURL, token})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize context store: %w", err)
	}

	names := store.ListContexts()
	sort.Strings(names)

	current := store.GetCurrentContextName()

	rows := make(ContextList, 0, len(names))
	for _, name := range names {
		ctx, err := store.GetContext(name)
		if err != nil {
			continue
		}
		rows = append(rows, contextRow{
			Current:   name == current,
			Name:      name,
			ServerURL: ctx.ServerURL,
			HasToken:  ctx.Token != "",
		})
	}

	return cmdutil.PrintOutput(os.Stdout, rows, len(rows) == 0, "No contexts configured. Run 'bridgectl login' first.", rows)
}
