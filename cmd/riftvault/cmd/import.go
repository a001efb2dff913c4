/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/di"
	"github.com/ssargent/riftvault/pkg/ingest"
	"github.com/ssargent/riftvault/pkg/storage"
)

func newImportCmd(a *app) *cobra.Command {
	var date string

	importCmd := &cobra.Command{
		Use:   "import <file...>",
		Short: "Decode replay files and add them to the match store",
		Long: `Decode replay files and add them to the match store.

Files that are already stored are skipped. The command exits non-zero if any
file could not be imported.

Examples:
  riftvault import NA1-5270847442.rofl
  riftvault import ./replays/*.rofl --date 2024-07-04`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchDate, err := ingest.ParseMatchDate(date)
			if err != nil {
				return err
			}

			return a.withStore(func(store di.Store) error {
				ing := ingest.New(store, a.logger, a.cfg.Upload.MaxBytes)

				imported, skipped, failed := 0, 0, 0
				for _, path := range args {
					m, err := importFile(cmd, ing, path, matchDate)
					switch {
					case errors.Is(err, storage.ErrDuplicate):
						skipped++
						cmd.Printf("%s: already imported\n", path)
					case err != nil:
						failed++
						cmd.PrintErrf("%s: %v\n", path, err)
					default:
						imported++
						cmd.Printf("%s: imported as %s (%s)\n", path, m.MatchID, m.FileHash)
					}
				}

				cmd.Printf("%d imported, %d skipped, %d failed\n", imported, skipped, failed)
				if failed > 0 {
					return fmt.Errorf("%d of %d replays failed to import", failed, len(args))
				}
				return nil
			})
		},
	}

	importCmd.Flags().StringVar(&date, "date", "", "Match date for the imported files (YYYY-MM-DD or RFC3339)")
	return importCmd
}

func importFile(cmd *cobra.Command, ing *ingest.Ingester, path string, date *time.Time) (*storage.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ing.IngestReader(cmd.Context(), filepath.Base(path), f, date)
}
