package config

import (
	"fmt"

	"github.com/marmos91/bridgefs/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the BridgeFS configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  bridgefs config validate

  # Validate specific config file
  bridgefs config validate --config /etc/bridgefs/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	// Load and validate configuration
	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional validation checks
	var warnings []string

	if cfg.Server.AuthToken == "" {
		warnings = append(warnings, "Auth token not configured - the endpoint accepts unauthenticated requests")
	}
	if len(cfg.Mounts) == 0 {
		warnings = append(warnings, "No mounts configured - every request will fail with no provider")
	}
	for _, mc := range cfg.Mounts {
		if mc.Provider == "memory" && !mc.Readonly {
			warnings = append(warnings, fmt.Sprintf("Mount %q uses the memory provider - contents are lost on restart", mc.Scheme))
		}
	}

	// Print results
	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Endpoint port:   %d\n", cfg.Server.Port)
	fmt.Printf("  Mounts:          %d\n", len(cfg.Mounts))
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)

	return nil
}
