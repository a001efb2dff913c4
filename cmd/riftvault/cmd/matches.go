/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/di"
	"github.com/ssargent/riftvault/pkg/storage"
)

func newMatchesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "List stored matches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store di.Store) error {
				matches, err := store.List()
				if err != nil {
					return fmt.Errorf("failed to list matches: %w", err)
				}
				return outputMatches(cmd.OutOrStdout(), a.format, matches)
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <hash|match-id>",
		Short: "Show one stored match",
		Long: `Show one stored match by file hash or match id.

Examples:
  riftvault show 3f786850e387550fdab836ed7e6dc881de23001b
  riftvault show NA1_5270847442`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store di.Store) error {
				m, err := lookupMatch(store, args[0])
				if err != nil {
					return err
				}
				return outputMatch(cmd.OutOrStdout(), a.format, m)
			})
		},
	}
}

func newDownloadCmd(a *app) *cobra.Command {
	var output string

	downloadCmd := &cobra.Command{
		Use:   "download <hash|match-id>",
		Short: "Write a stored replay file to disk",
		Long: `Write the original replay bytes of a stored match to disk.

Without -o the file is written to the current directory under its original name.

Examples:
  riftvault download NA1_5270847442 -o ./game.rofl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store di.Store) error {
				m, err := lookupMatch(store, args[0])
				if err != nil {
					return err
				}

				raw, err := store.File(m.FileHash)
				if err != nil {
					return fmt.Errorf("failed to read replay: %w", err)
				}

				path := output
				if path == "" {
					path = m.FileName
				}
				if err := os.WriteFile(path, raw, 0644); err != nil {
					return fmt.Errorf("failed to write replay: %w", err)
				}

				cmd.Printf("Wrote %d bytes to %s\n", len(raw), path)
				return nil
			})
		},
	}

	downloadCmd.Flags().StringVarP(&output, "output", "o", "", "Destination file path")
	return downloadCmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <hash|match-id>",
		Short: "Delete a stored match and its replay file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store di.Store) error {
				m, err := lookupMatch(store, args[0])
				if err != nil {
					return err
				}
				if err := store.Delete(m.FileHash); err != nil {
					return fmt.Errorf("failed to delete match: %w", err)
				}

				cmd.Printf("Deleted match %s (%s)\n", m.MatchID, m.FileHash)
				return nil
			})
		},
	}
}

// lookupMatch finds a match by file hash, then by match id
func lookupMatch(store di.Store, ref string) (*storage.Match, error) {
	m, err := store.Get(ref)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	m, err = store.GetByMatchID(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("match %s: %w", ref, storage.ErrNotFound)
	}
	return m, err
}
