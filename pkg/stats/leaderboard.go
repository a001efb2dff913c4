package stats

import (
	"sort"
	"strconv"

	"github.com/ssargent/riftvault/pkg/players"
	"github.com/ssargent/riftvault/pkg/storage"
)

// TopChampionCount is how many champions a leaderboard row highlights.
const TopChampionCount = 3

// LeaderboardPlayer is one ranked row of the leaderboard.
type LeaderboardPlayer struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Rank          int             `json:"rank"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	WinRate       float64         `json:"winRate"`
	Streak        string          `json:"streak"`
	MatchResults  []MatchResult   `json:"matchResults"`
	PositionStats []PositionStats `json:"positionStats"`
	Champions     []ChampionStats `json:"champions"`
	TopChampions  []ChampionStats `json:"topChampions"`
}

type leaderboardEntry struct {
	row       *LeaderboardPlayer
	champions championSet
	positions positionSet
}

// Leaderboard ranks every player seen in matches by wins, then fewest losses.
func Leaderboard(matches []*storage.Match, dir *players.Directory) []LeaderboardPlayer {
	var order []*leaderboardEntry
	index := make(map[string]*leaderboardEntry)

	for _, m := range newestFirst(matches) {
		gameLength := m.Data.Metadata.GameLength
		for _, p := range m.Data.Players() {
			id := dir.CanonicalID(p.PUUID())
			e, ok := index[id]
			if !ok {
				e = &leaderboardEntry{row: &LeaderboardPlayer{
					ID:   id,
					Name: displayName(dir, p),
				}}
				index[id] = e
				order = append(order, e)
			}

			if p.Won() {
				e.row.Wins++
			} else {
				e.row.Losses++
			}
			e.row.MatchResults = append(e.row.MatchResults, newMatchResult(m, p))
			e.positions.add(p.Position(), p.Won())
			e.champions.add(p, gameLength)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i].row, order[j].row
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Losses < b.Losses
	})

	out := make([]LeaderboardPlayer, 0, len(order))
	for i, e := range order {
		row := *e.row
		row.Rank = i + 1
		row.WinRate = WinRate(row.Wins, row.Losses)
		row.Streak = Streak(row.MatchResults)
		row.PositionStats = e.positions.stats()
		row.Champions = e.champions.averages()
		row.TopChampions = row.Champions[:min(TopChampionCount, len(row.Champions))]
		out = append(out, row)
	}
	return out
}

// Streak describes the run of identical results at the start of results,
// for example "W3" or "L1". results must be newest first.
func Streak(results []MatchResult) string {
	if len(results) == 0 {
		return ""
	}
	last := results[0].Win
	n := 0
	for _, r := range results {
		if r.Win != last {
			break
		}
		n++
	}
	if last {
		return "W" + strconv.Itoa(n)
	}
	return "L" + strconv.Itoa(n)
}
