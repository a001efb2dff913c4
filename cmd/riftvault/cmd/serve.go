/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/api"
	"github.com/ssargent/riftvault/pkg/di"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port int
		bind string
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the RiftVault REST API server.

The server accepts replay uploads, serves match history, the leaderboard
and player profiles, and exposes Prometheus metrics on /metrics.

Examples:
  riftvault serve
  riftvault serve --port 9000 --bind 0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			if cmd.Flags().Changed("bind") {
				a.cfg.Bind = bind
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverConfig := api.ServerConfig{
				Port:           a.cfg.Port,
				Bind:           a.cfg.Bind,
				DataDir:        a.cfg.DataDir,
				MaxUploadBytes: a.cfg.Upload.MaxBytes,
				Players:        a.directory(),
			}

			return a.withStore(func(store di.Store) error {
				a.logger.WithFields(logrus.Fields{
					"addr":     fmt.Sprintf("%s:%d", a.cfg.Bind, a.cfg.Port),
					"data_dir": a.cfg.DataDir,
					"aliases":  serverConfig.Players.Len(),
				}).Info("starting RiftVault")

				starter := container.GetServerFactory().CreateServerStarter()
				return starter.StartServer(ctx, store, serverConfig, a.logger)
			})
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&bind, "bind", "127.0.0.1", "Address to bind server to")
	return serveCmd
}
