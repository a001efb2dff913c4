package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/stats"
	"github.com/ssargent/riftvault/pkg/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	formatTable = "table"
	formatJSON  = "json"
)

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatLength renders a game length in milliseconds as m:ss
func formatLength(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// outputReplays displays decoded replays
func outputReplays(w io.Writer, format string, replays []*rofl.Replay) error {
	if format == formatJSON {
		if len(replays) == 1 {
			return writeJSON(w, replays[0])
		}
		return writeJSON(w, replays)
	}

	t := newTable(w)
	defer t.Flush()

	fmt.Fprintln(t, "FILE\tVERSION\tGAME VERSION\tLENGTH\tPLAYERS")
	for _, r := range replays {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%d\n",
			r.Filename, r.Version, orDash(r.GameVersion),
			formatLength(r.Metadata.GameLength), len(r.Players()))
	}
	return nil
}

// outputMatches displays stored matches
func outputMatches(w io.Writer, format string, matches []*storage.Match) error {
	if format == formatJSON {
		return writeJSON(w, matches)
	}

	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches found")
		return nil
	}

	t := newTable(w)
	defer t.Flush()

	fmt.Fprintln(t, "HASH\tMATCH\tGAME VERSION\tLENGTH\tDATE\tMVP")
	for _, m := range matches {
		gameVersion, length := "-", "-"
		if m.Data != nil {
			gameVersion = orDash(m.Data.GameVersion)
			length = formatLength(m.Data.Metadata.GameLength)
		}
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.FileHash, m.MatchID, gameVersion, length, formatDate(m.MatchDate), orDash(m.MVPPlayer))
	}
	return nil
}

// outputMatch displays one stored match with its players
func outputMatch(w io.Writer, format string, m *storage.Match) error {
	if format == formatJSON {
		return writeJSON(w, m)
	}

	t := newTable(w)
	defer t.Flush()

	fmt.Fprintf(t, "Hash:\t%s\n", m.FileHash)
	fmt.Fprintf(t, "Match:\t%s\n", m.MatchID)
	fmt.Fprintf(t, "File:\t%s (%d bytes)\n", m.FileName, m.FileSize)
	fmt.Fprintf(t, "Date:\t%s\n", formatDate(m.MatchDate))
	fmt.Fprintf(t, "MVP:\t%s\n", orDash(m.MVPPlayer))
	if m.Data == nil {
		return nil
	}
	fmt.Fprintf(t, "Version:\t%s\n", m.Data.Version)
	fmt.Fprintf(t, "Game version:\t%s\n", orDash(m.Data.GameVersion))
	fmt.Fprintf(t, "Length:\t%s\n", formatLength(m.Data.Metadata.GameLength))
	fmt.Fprintln(t)

	fmt.Fprintln(t, "TEAM\tPLAYER\tCHAMPION\tPOSITION\tK/D/A\tCS\tRESULT")
	for _, p := range m.Data.Players() {
		result := "Loss"
		if p.Won() {
			result = "Win"
		}
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%d/%d/%d\t%d\t%s\n",
			p.Team(), p.DisplayName(), p.Champion(), orDash(p.Position()),
			p.Kills(), p.Deaths(), p.Assists(), p.CreepScore(), result)
	}
	return nil
}

// outputLeaderboard displays ranked players
func outputLeaderboard(w io.Writer, format string, rows []stats.LeaderboardPlayer) error {
	if format == formatJSON {
		return writeJSON(w, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No players found")
		return nil
	}

	t := newTable(w)
	defer t.Flush()

	fmt.Fprintln(t, "RANK\tPLAYER\tW\tL\tWIN%\tSTREAK\tTOP CHAMPIONS")
	for _, r := range rows {
		names := make([]string, 0, len(r.TopChampions))
		for _, c := range r.TopChampions {
			names = append(names, c.Name)
		}
		fmt.Fprintf(t, "%d\t%s\t%d\t%d\t%.1f\t%s\t%s\n",
			r.Rank, r.Name, r.Wins, r.Losses, r.WinRate, orDash(r.Streak), strings.Join(names, ", "))
	}
	return nil
}

// outputProfile displays one player's profile
func outputProfile(w io.Writer, format string, p *stats.Profile) error {
	if format == formatJSON {
		return writeJSON(w, p)
	}

	t := newTable(w)
	defer t.Flush()

	fmt.Fprintf(t, "Player:\t%s\n", p.Name)
	fmt.Fprintf(t, "PUUID:\t%s\n", p.ID)
	if len(p.Aliases) > 0 {
		fmt.Fprintf(t, "Aliases:\t%s\n", strings.Join(p.Aliases, ", "))
	}
	fmt.Fprintf(t, "Rank:\t%d of %d\n", p.Rank.Position, p.Rank.Total)
	fmt.Fprintf(t, "Record:\t%d-%d (%.1f%%)\n", p.Stats.Wins, p.Stats.Losses, p.Stats.WinRate)
	fmt.Fprintln(t)

	fmt.Fprintln(t, "CHAMPION\tGAMES\tW\tL\tKDA\tCS/MIN")
	for _, c := range p.Stats.Champions {
		fmt.Fprintf(t, "%s\t%d\t%d\t%d\t%.2f\t%.1f\n", c.Name, c.Games, c.Wins, c.Losses, c.KDA, c.CreepScorePerMinute)
	}
	fmt.Fprintln(t)

	fmt.Fprintln(t, "MATCH\tCHAMPION\tK/D/A\tRESULT")
	for _, m := range p.Matches {
		result := "Loss"
		if m.Win {
			result = "Win"
		}
		fmt.Fprintf(t, "%s\t%s\t%d/%d/%d\t%s\n", m.MatchID, m.Champion, m.Kills, m.Deaths, m.Assists, result)
	}
	return nil
}
