/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default RiftVault configuration file and create the data directory.

Examples:
  riftvault init
  riftvault init --config ./riftvault.yaml --data-dir ./data
  riftvault init --force`,
		Args: cobra.NoArgs,
		// The config file may not exist yet, so skip the root setup
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := a.configPath
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(configPath) && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
			}

			cfg, err := config.BootstrapConfig(configPath, a.dataDir)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			cmd.Printf("Configuration written to %s\n", configPath)
			cmd.Printf("Data directory: %s\n", cfg.DataDir)
			cmd.Printf("\nStart the server with:\n")
			cmd.Printf("  riftvault serve --config %s\n", configPath)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")
	return initCmd
}
