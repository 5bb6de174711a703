package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/api"
	"github.com/mhoffman/tagdir/pkg/config"
	"github.com/mhoffman/tagdir/pkg/log"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the tagdir REST API server.

Settings come from the config file (see 'tagdir init') and can be
overridden per run with flags.

Examples:
  tagdir serve
  tagdir serve --port 9090 --api-key mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			cfg.Security.APIKey = apiKey
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			key, err := config.GenerateSecureKey(32)
			if err != nil {
				return fmt.Errorf("failed to generate API key: %w", err)
			}
			cfg.Security.APIKey = key
			cmd.Printf("Generated API key: %s\n", key)
		}

		cat, ok := catalogFromContext(cmd)
		if !ok {
			return fmt.Errorf("catalog not found in context")
		}

		logger := log.New(log.Options{
			Name:  "tagdir",
			Level: log.ParseLevel(cfg.Logging.Level),
			File:  cfg.Logging.File,
			JSON:  cfg.Logging.JSON,
		})

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
		}
		return api.StartServer(cat, serverConfig, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Config file path (default: ~/.config/tagdir/config.yaml)")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "", "Bind address")
	serveCmd.Flags().String("api-key", "", "API key for request authentication")
}
