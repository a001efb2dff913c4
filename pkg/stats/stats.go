// Package stats aggregates stored matches into leaderboard and player views.
//
// All views are computed on demand from the full match list. Player ids are
// canonicalized through a players.Directory so alternate accounts count as
// their main account.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/ssargent/riftvault/pkg/players"
	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/storage"
)

// MatchResult is one player's line from one match.
type MatchResult struct {
	MatchID             string     `json:"matchId"`
	FileHash            string     `json:"fileHash"`
	Win                 bool       `json:"win"`
	Champion            string     `json:"champion"`
	Kills               int64      `json:"kills"`
	Deaths              int64      `json:"deaths"`
	Assists             int64      `json:"assists"`
	CreepScore          int64      `json:"creepScore"`
	CreepScorePerMinute float64    `json:"creepScorePerMinute"`
	GoldEarned          int64      `json:"goldEarned"`
	DamageDealt         int64      `json:"damageDealt"`
	DamageTaken         int64      `json:"damageTaken"`
	GameLength          int64      `json:"gameLength"`
	Date                *time.Time `json:"date,omitempty"`
	Position            string     `json:"position"`
}

// ChampionStats are per-champion averages for one player.
type ChampionStats struct {
	Name                string  `json:"name"`
	Games               int     `json:"games"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	Kills               float64 `json:"kills"`
	Deaths              float64 `json:"deaths"`
	Assists             float64 `json:"assists"`
	KDA                 float64 `json:"kda"`
	CreepScore          float64 `json:"creepScore"`
	CreepScorePerMinute float64 `json:"creepScorePerMinute"`
	MinutesPlayed       float64 `json:"minutesPlayed"`
}

// PositionStats is the record in one team position. WinRate is a fraction
// rounded to one decimal.
type PositionStats struct {
	Name    string  `json:"name"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winRate"`
}

func roundUI(v float64) float64 {
	return math.Round(v*10) / 10
}

func perMinute(v int64, gameLength int64) float64 {
	if gameLength <= 0 {
		return 0
	}
	return float64(v) / (float64(gameLength) / 1000 / 60)
}

// KDA is (kills + assists) / deaths, or kills + assists when there were no deaths.
func KDA(kills, deaths, assists float64) float64 {
	if deaths == 0 {
		return kills + assists
	}
	return (kills + assists) / deaths
}

// WinRate returns wins as a percentage of games, rounded to one decimal.
func WinRate(wins, losses int) float64 {
	if wins+losses == 0 {
		return 0
	}
	return roundUI(float64(wins) / float64(wins+losses) * 100)
}

func newMatchResult(m *storage.Match, p rofl.PlayerStats) MatchResult {
	gameLength := m.Data.Metadata.GameLength
	cs := p.CreepScore()
	return MatchResult{
		MatchID:             m.MatchID,
		FileHash:            m.FileHash,
		Win:                 p.Won(),
		Champion:            p.Champion(),
		Kills:               p.Kills(),
		Deaths:              p.Deaths(),
		Assists:             p.Assists(),
		CreepScore:          cs,
		CreepScorePerMinute: roundUI(perMinute(cs, gameLength)),
		GoldEarned:          p.GoldEarned(),
		DamageDealt:         p.DamageDealt(),
		DamageTaken:         p.DamageTaken(),
		GameLength:          gameLength,
		Date:                m.MatchDate,
		Position:            p.Position(),
	}
}

type championTotals struct {
	name                   string
	games, wins, losses    int
	kills, deaths, assists int64
	creepScore             int64
	minutes                float64
}

func (c *championTotals) add(p rofl.PlayerStats, gameLength int64) {
	c.games++
	if p.Won() {
		c.wins++
	} else {
		c.losses++
	}
	c.kills += p.Kills()
	c.deaths += p.Deaths()
	c.assists += p.Assists()
	c.creepScore += p.CreepScore()
	c.minutes += float64(gameLength) / 1000 / 60
}

func (c *championTotals) average() ChampionStats {
	games := float64(c.games)
	cspm := 0.0
	if c.minutes > 0 {
		cspm = roundUI(float64(c.creepScore) / c.minutes)
	}
	return ChampionStats{
		Name:                c.name,
		Games:               c.games,
		Wins:                c.wins,
		Losses:              c.losses,
		Kills:               roundUI(float64(c.kills) / games),
		Deaths:              roundUI(float64(c.deaths) / games),
		Assists:             roundUI(float64(c.assists) / games),
		KDA:                 roundUI(KDA(float64(c.kills), float64(c.deaths), float64(c.assists))),
		CreepScore:          math.Round(float64(c.creepScore) / games),
		CreepScorePerMinute: cspm,
		MinutesPlayed:       roundUI(c.minutes),
	}
}

// championSet keeps champions in first-seen order.
type championSet struct {
	order []*championTotals
	index map[string]*championTotals
}

func (s *championSet) add(p rofl.PlayerStats, gameLength int64) {
	if s.index == nil {
		s.index = make(map[string]*championTotals)
	}
	name := p.Champion()
	c, ok := s.index[name]
	if !ok {
		c = &championTotals{name: name}
		s.index[name] = c
		s.order = append(s.order, c)
	}
	c.add(p, gameLength)
}

// averages returns the champions ordered by games played, most first.
func (s *championSet) averages() []ChampionStats {
	out := make([]ChampionStats, 0, len(s.order))
	for _, c := range s.order {
		out = append(out, c.average())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Games > out[j].Games
	})
	return out
}

// positionSet keeps each position once, in first-seen order.
type positionSet struct {
	order []*PositionStats
	index map[string]*PositionStats
}

func (s *positionSet) add(name string, win bool) {
	if s.index == nil {
		s.index = make(map[string]*PositionStats)
	}
	ps, ok := s.index[name]
	if !ok {
		ps = &PositionStats{Name: name}
		s.index[name] = ps
		s.order = append(s.order, ps)
	}
	ps.Games++
	if win {
		ps.Wins++
	} else {
		ps.Losses++
	}
}

func (s *positionSet) stats() []PositionStats {
	out := make([]PositionStats, 0, len(s.order))
	for _, ps := range s.order {
		p := *ps
		p.WinRate = roundUI(float64(p.Wins) / float64(p.Wins+p.Losses))
		out = append(out, p)
	}
	return out
}

// newestFirst returns the decoded matches ordered by game number, highest first.
func newestFirst(matches []*storage.Match) []*storage.Match {
	out := make([]*storage.Match, 0, len(matches))
	for _, m := range matches {
		if m != nil && m.Data != nil {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameNumber() > out[j].GameNumber()
	})
	return out
}

func displayName(dir *players.Directory, p rofl.PlayerStats) string {
	return dir.DisplayName(p.PUUID(), p.DisplayName())
}
