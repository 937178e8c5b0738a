package commands

import (
	"os"
	"time"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/internal/bytesize"
	"github.com/marmos91/bridgefs/internal/cli/output"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <uri>",
	Short: "Show resource metadata",
	Long: `Show the metadata record of a file or directory.

Examples:
  # Stat a file
  bridgectl stat memfs:///notes/today.md

  # Output as JSON
  bridgectl stat memfs:///notes/today.md -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

// statResult is the stat record for display.
type statResult struct {
	URI   string `json:"uri" yaml:"uri"`
	Type  string `json:"type" yaml:"type"`
	Size  uint64 `json:"size" yaml:"size"`
	CTime string `json:"ctime,omitempty" yaml:"ctime,omitempty"`
	MTime string `json:"mtime,omitempty" yaml:"mtime,omitempty"`
}

func runStat(cmd *cobra.Command, args []string) error {
	uri, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	stat, err := fs.Stat(cmd.Context(), uri)
	if err != nil {
		return err
	}

	result := statResult{
		URI:   uri.String(),
		Type:  stat.Type.String(),
		Size:  stat.Size,
		CTime: formatUnixMillis(stat.CTime),
		MTime: formatUnixMillis(stat.MTime),
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, result)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, result)
	default:
		return output.SimpleTable(os.Stdout, [][2]string{
			{"URI", result.URI},
			{"Type", result.Type},
			{"Size", bytesize.ByteSize(stat.Size).String()},
			{"Created", result.CTime},
			{"Modified", result.MTime},
		})
	}
}

// formatUnixMillis renders a Unix-milliseconds timestamp; 0 means the
// provider could not supply one.
func formatUnixMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
