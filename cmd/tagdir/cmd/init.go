package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the tagdir configuration",
	Long: `Write a configuration file with a freshly generated API key.

This is the easiest way to set up tagdir for serving:

  tagdir init --data-dir ./data
  tagdir serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		dataDir, _ := cmd.Flags().GetString("data-dir")
		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return fmt.Errorf("failed to bootstrap config: %w", err)
		}

		cmd.Printf("Wrote config to %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", "", "Config file path (default: ~/.config/tagdir/config.yaml)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
