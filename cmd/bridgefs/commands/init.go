package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/bridgefs/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample BridgeFS configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/bridgefs/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  bridgefs init

  # Initialize with custom path
  bridgefs init --config /etc/bridgefs/config.yaml

  # Force overwrite existing config
  bridgefs init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists: %s\n\n"+
			"Use --force to overwrite it", configPath)
	}

	if err := config.SaveConfig(config.GetDefaultConfig(), configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to declare your mounts")
	fmt.Println("  2. Start the endpoint with: bridgefs start")
	fmt.Printf("  3. Or specify custom config: bridgefs start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  The endpoint starts without authentication by default.")
	fmt.Println("  For anything beyond local development, set an auth token:")
	fmt.Println("    export BRIDGEFS_SERVER_AUTH_TOKEN=$(openssl rand -hex 32)")

	return nil
}
