/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/config"
	"github.com/ssargent/riftvault/pkg/di"
	"github.com/ssargent/riftvault/pkg/logging"
	"github.com/ssargent/riftvault/pkg/players"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// app carries the state shared by the subcommands of one invocation
type app struct {
	configPath string
	dataDir    string
	logLevel   string
	format     string

	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCmd builds the riftvault command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "riftvault",
		Short: "RiftVault - League of Legends replay vault",
		Long: `RiftVault decodes League of Legends replay (.rofl) files, stores them
with their match metadata, and serves match history, a leaderboard and
player profiles over a REST API.

Examples:
  riftvault parse NA1-5270847442.rofl
  riftvault import ./replays/*.rofl --date 2024-07-04
  riftvault serve --port 9000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", "", "Data directory for the match store")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.format, "format", formatTable, "Output format (table or json)")

	rootCmd.AddCommand(
		newInitCmd(a),
		newServeCmd(a),
		newParseCmd(a),
		newImportCmd(a),
		newMatchesCmd(a),
		newShowCmd(a),
		newDownloadCmd(a),
		newDeleteCmd(a),
		newLeaderboardCmd(a),
		newPlayerCmd(a),
		newServiceCmd(a),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration (file, then environment, then flags) and the logger
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath == "" {
		a.configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(a.configPath) {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if a.format != formatTable && a.format != formatJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", a.format, formatTable, formatJSON)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// withStore opens the match store for the duration of fn
func (a *app) withStore(fn func(store di.Store) error) error {
	if container == nil {
		return fmt.Errorf("dependency container not initialized")
	}

	if err := os.MkdirAll(a.cfg.DataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	store, err := container.GetStoreFactory()(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			a.logger.WithError(cerr).Warn("close store")
		}
	}()

	return fn(store)
}

func (a *app) directory() *players.Directory {
	return players.NewDirectory(a.cfg.Players.Aliases, a.cfg.Players.Names)
}
