/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/di"
	"github.com/ssargent/riftvault/pkg/stats"
)

func newLeaderboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank every player across the stored matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store di.Store) error {
				matches, err := store.List()
				if err != nil {
					return fmt.Errorf("failed to list matches: %w", err)
				}
				return outputLeaderboard(cmd.OutOrStdout(), a.format, stats.Leaderboard(matches, a.directory()))
			})
		},
	}
}

func newPlayerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "player <puuid>",
		Short: "Show one player's profile",
		Long: `Show one player's record, champions and match history.

Alternate accounts listed under players.aliases in the configuration are
merged into their main account.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store di.Store) error {
				matches, err := store.List()
				if err != nil {
					return fmt.Errorf("failed to list matches: %w", err)
				}

				profile, err := stats.PlayerProfile(matches, args[0], a.directory())
				if err != nil {
					return fmt.Errorf("player %s: %w", args[0], err)
				}
				return outputProfile(cmd.OutOrStdout(), a.format, profile)
			})
		},
	}
}
