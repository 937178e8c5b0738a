// Package cmdutil provides shared helpers for bridgectl commands: global
// flag state, connection resolution, and output formatting.
package cmdutil

import (
	"context"
	"fmt"
	"io"

	"github.com/marmos91/bridgefs/internal/cli/credentials"
	"github.com/marmos91/bridgefs/internal/cli/output"
	"github.com/marmos91/bridgefs/internal/cli/prompt"
	"github.com/marmos91/bridgefs/pkg/apiclient"
	"github.com/marmos91/bridgefs/pkg/fsclient"
)

// GlobalFlags holds the persistent flag values shared by all commands.
type GlobalFlags struct {
	ServerURL string
	Token     string
	Output    string
	Verbose   bool
}

// Flags is populated from the root command's persistent flags before any
// subcommand runs.
var Flags GlobalFlags

// GetOutputFormatParsed parses the --output flag into a Format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// ResolveConnection determines the endpoint URL and token to use.
// Command-line flags take precedence over the stored context.
func ResolveConnection() (serverURL, token string, err error) {
	serverURL = Flags.ServerURL
	token = Flags.Token

	if serverURL != "" {
		return serverURL, token, nil
	}

	store, err := credentials.NewStore()
	if err != nil {
		return "", "", fmt.Errorf("failed to initialize context store: %w", err)
	}

	ctx, err := store.GetCurrentContext()
	if err != nil || ctx.ServerURL == "" {
		return "", "", credentials.ErrNotLoggedIn
	}

	serverURL = ctx.ServerURL
	if token == "" {
		token = ctx.Token
	}
	return serverURL, token, nil
}

// NewClient creates an endpoint client from flags or the stored context.
func NewClient() (*apiclient.Client, error) {
	serverURL, token, err := ResolveConnection()
	if err != nil {
		return nil, err
	}

	client := apiclient.New(serverURL)
	if token != "" {
		client = client.WithToken(token)
	}
	return client, nil
}

// NewFileSystem creates a file system facade over the endpoint and seeds
// its scheme registry from the host's mount listing.
func NewFileSystem(ctx context.Context) (*fsclient.FileSystem, error) {
	client, err := NewClient()
	if err != nil {
		return nil, err
	}

	fs := fsclient.New(client)

	schemes, err := client.Schemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemes: %w", err)
	}
	for _, info := range schemes {
		fs.RegisterScheme(info.Scheme, fsclient.SchemeCapabilities{Readonly: info.Readonly})
	}

	return fs, nil
}

// HandleAbort converts prompt aborts into a clean error message.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		return fmt.Errorf("aborted")
	}
	return err
}

// PrintOutput prints data in the format selected by the --output flag.
// Table output uses the renderer; JSON and YAML marshal data directly.
// When isEmpty is true, table output prints emptyMsg instead.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, renderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, renderer)
	}
}
