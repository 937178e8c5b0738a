package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/pkg/wire"
	"github.com/spf13/cobra"
)

var writeFrom string

var writeCmd = &cobra.Command{
	Use:   "write <uri>",
	Short: "Write file contents",
	Long: `Replace the entire content of a file. Missing files are created.

Content is read from stdin by default; use --from to read a local file.
Fails early when the target scheme is mounted read-only.

Examples:
  # Write from stdin
  echo "hello" | bridgectl write memfs:///notes/today.md

  # Upload a local file
  bridgectl write local:///images/logo.png --from logo.png`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&writeFrom, "from", "", "Read content from a local file instead of stdin")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	uri, err := wire.ParseURI(args[0])
	if err != nil {
		return err
	}

	fs, err := cmdutil.NewFileSystem(cmd.Context())
	if err != nil {
		return err
	}

	// The registry is seeded from the mount listing, so a read-only mount
	// can be rejected before the content is read and shipped.
	if writable := fs.IsWritableFileSystem(uri.Scheme); writable != nil && !*writable {
		return fmt.Errorf("scheme %q is mounted read-only", uri.Scheme)
	}

	var data []byte
	if writeFrom != "" {
		data, err = os.ReadFile(writeFrom)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", writeFrom, err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	if err := fs.WriteFile(cmd.Context(), uri, data); err != nil {
		return err
	}

	fmt.Printf("Wrote %d bytes to %s\n", len(data), uri)
	return nil
}
