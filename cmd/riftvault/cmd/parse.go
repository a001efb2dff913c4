/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/rofl"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file...>",
		Short: "Decode replay files and print their metadata",
		Long: `Decode one or more replay files without storing them.

With --format json the decoded replay is printed as JSON; the default table
format prints a one-line summary per file. The command exits non-zero if any
file fails to decode.

Examples:
  riftvault parse NA1-5270847442.rofl
  riftvault parse --format json NA1-5270847442.rofl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			replays := make([]*rofl.Replay, 0, len(args))
			failed := 0

			for _, path := range args {
				replay, err := rofl.DecodeFile(path)
				if err != nil {
					failed++
					a.logger.WithFields(logrus.Fields{
						"file": path,
						"kind": rofl.Kind(err),
					}).WithError(err).Debug("decode failed")
					cmd.PrintErrf("%s: %s: %v\n", path, rofl.Kind(err), err)
					continue
				}
				replays = append(replays, replay)
			}

			if len(replays) > 0 {
				if err := outputReplays(cmd.OutOrStdout(), a.format, replays); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d replays failed to decode", failed, len(args))
			}
			return nil
		},
	}
}
