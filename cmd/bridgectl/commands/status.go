package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/marmos91/bridgefs/cmd/bridgectl/cmdutil"
	"github.com/marmos91/bridgefs/internal/cli/health"
	"github.com/marmos91/bridgefs/internal/cli/output"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show endpoint status",
	Long: `Display the status of the connected BridgeFS endpoint.

This command checks the endpoint health probe and displays status and
mount count.

Examples:
  # Check status of connected endpoint
  bridgectl status

  # Output as JSON
  bridgectl status -o json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// EndpointStatus represents the endpoint status for display.
type EndpointStatus struct {
	Server  string `json:"server" yaml:"server"`
	Status  string `json:"status" yaml:"status"`
	Healthy bool   `json:"healthy" yaml:"healthy"`
	Mounts  int    `json:"mounts" yaml:"mounts"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	serverURL, _, err := cmdutil.ResolveConnection()
	if err != nil {
		return err
	}

	status := EndpointStatus{
		Server:  serverURL,
		Status:  "unreachable",
		Healthy: false,
	}

	// Check health probe (unauthenticated)
	healthURL := serverURL + "/health"
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(healthURL)
	if err != nil {
		status.Error = err.Error()
	} else {
		defer func() { _ = resp.Body.Close() }()

		var healthResp health.Response
		if err := json.NewDecoder(resp.Body).Decode(&healthResp); err == nil {
			status.Status = healthResp.Status
			status.Healthy = healthResp.Status == "healthy"
			status.Mounts = healthResp.Mounts
		} else {
			status.Status = "unknown"
			status.Error = "Failed to parse health response"
		}
	}

	// Output based on format
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
	}

	return nil
}

func printStatusTable(status EndpointStatus) {
	fmt.Println()
	fmt.Println("BridgeFS Endpoint Status")
	fmt.Println("========================")
	fmt.Println()
	fmt.Printf("  Endpoint:   %s\n", status.Server)

	if status.Healthy {
		fmt.Printf("  Status:     \033[32m● %s\033[0m\n", status.Status)
	} else if status.Status == "unreachable" {
		fmt.Printf("  Status:     \033[31m○ %s\033[0m\n", status.Status)
	} else {
		fmt.Printf("  Status:     \033[33m● %s\033[0m\n", status.Status)
	}

	if status.Healthy {
		fmt.Printf("  Mounts:     %d\n", status.Mounts)
	}
	if status.Error != "" {
		fmt.Printf("  Error:      %s\n", status.Error)
	}
	fmt.Println()
}
