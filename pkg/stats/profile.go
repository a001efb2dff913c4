package stats

import (
	"errors"
	"sort"

	"github.com/ssargent/riftvault/pkg/players"
	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/storage"
)

var ErrPlayerNotFound = errors.New("player not found")

// Profile is the detailed view of one player.
type Profile struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Aliases []string       `json:"aliases,omitempty"` // alternate accounts merged in
	Rank    Rank           `json:"rank"`
	Stats   ProfileTotals  `json:"stats"`
	Matches []ProfileMatch `json:"matches"`
}

// Rank places a player by win rate among everyone in the match set.
type Rank struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

type ProfileTotals struct {
	TotalGames int             `json:"totalGames"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
	WinRate    float64         `json:"winRate"`
	Champions  []ChampionStats `json:"champions"`
	Positions  []PositionStats `json:"positions"`
	Synergies  []Relation      `json:"synergies"`
	Villains   []Relation      `json:"villains"`
}

// Relation is the player's record with (synergy) or against (villain) another player.
type Relation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Games  int    `json:"games"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type ProfileMatch struct {
	MatchResult
	Items []int64        `json:"items"`
	Teams [][]TeamMember `json:"teams"`
}

type TeamMember struct {
	Name     string `json:"name"`
	PUUID    string `json:"puuid"`
	Champion string `json:"champion"`
}

type relationSet struct {
	order []*Relation
	index map[string]*Relation
}

func (s *relationSet) add(dir *players.Directory, other rofl.PlayerStats, win bool) {
	if s.index == nil {
		s.index = make(map[string]*Relation)
	}
	id := dir.CanonicalID(other.PUUID())
	r, ok := s.index[id]
	if !ok {
		r = &Relation{ID: id, Name: displayName(dir, other)}
		s.index[id] = r
		s.order = append(s.order, r)
	}
	r.Games++
	if win {
		r.Wins++
	} else {
		r.Losses++
	}
}

// list orders relations by games together, most first.
func (s *relationSet) list() []Relation {
	out := make([]Relation, 0, len(s.order))
	for _, r := range s.order {
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Games > out[j].Games
	})
	return out
}

// PlayerProfile builds the profile for puuid, which may be an alternate account.
// It returns ErrPlayerNotFound when the player appears in none of the matches.
func PlayerProfile(matches []*storage.Match, puuid string, dir *players.Directory) (*Profile, error) {
	id := dir.CanonicalID(puuid)
	profile := &Profile{ID: id, Matches: []ProfileMatch{}}

	var (
		champions championSet
		positions positionSet
		synergies relationSet
		villains  relationSet
	)

	sorted := newestFirst(matches)
	for _, m := range sorted {
		records := m.Data.Players()
		idx := -1
		for i, p := range records {
			if dir.CanonicalID(p.PUUID()) == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		player := records[idx]
		win := player.Won()

		profile.Stats.TotalGames++
		if win {
			profile.Stats.Wins++
		} else {
			profile.Stats.Losses++
		}
		if profile.Name == "" {
			profile.Name = displayName(dir, player)
		}

		champions.add(player, m.Data.Metadata.GameLength)
		positions.add(player.Position(), win)

		for i, other := range records {
			if i == idx {
				continue
			}
			if other.Team() == player.Team() {
				synergies.add(dir, other, win)
			} else {
				villains.add(dir, other, win)
			}
		}

		profile.Matches = append(profile.Matches, ProfileMatch{
			MatchResult: newMatchResult(m, player),
			Items:       player.Items(),
			Teams:       teams(dir, records),
		})
	}

	if profile.Stats.TotalGames == 0 {
		return nil, ErrPlayerNotFound
	}

	profile.Stats.WinRate = WinRate(profile.Stats.Wins, profile.Stats.Losses)
	profile.Stats.Champions = champions.averages()
	profile.Stats.Positions = positions.stats()
	profile.Stats.Synergies = synergies.list()
	profile.Stats.Villains = villains.list()
	profile.Rank = rankByWinRate(sorted, id, dir)
	profile.Aliases = dir.Aliases(id)

	return profile, nil
}

// teams splits the records by TEAM, in order of first appearance.
func teams(dir *players.Directory, records []rofl.PlayerStats) [][]TeamMember {
	var order []string
	byTeam := make(map[string][]TeamMember)
	for _, p := range records {
		team := p.Team()
		if _, ok := byTeam[team]; !ok {
			order = append(order, team)
		}
		byTeam[team] = append(byTeam[team], TeamMember{
			Name:     displayName(dir, p),
			PUUID:    dir.CanonicalID(p.PUUID()),
			Champion: p.Champion(),
		})
	}

	out := make([][]TeamMember, 0, len(order))
	for _, team := range order {
		out = append(out, byTeam[team])
	}
	return out
}

// rankByWinRate ranks every player by win rate. Ties go to the player with
// more games, then to the lower id.
func rankByWinRate(matches []*storage.Match, id string, dir *players.Directory) Rank {
	type record struct {
		id           string
		wins, losses int
	}
	index := make(map[string]*record)
	var all []*record
	for _, m := range matches {
		for _, p := range m.Data.Players() {
			pid := dir.CanonicalID(p.PUUID())
			r, ok := index[pid]
			if !ok {
				r = &record{id: pid}
				index[pid] = r
				all = append(all, r)
			}
			if p.Won() {
				r.wins++
			} else {
				r.losses++
			}
		}
	}

	rate := func(r *record) float64 {
		return float64(r.wins) / float64(r.wins+r.losses)
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if ra, rb := rate(a), rate(b); ra != rb {
			return ra > rb
		}
		if ga, gb := a.wins+a.losses, b.wins+b.losses; ga != gb {
			return ga > gb
		}
		return a.id < b.id
	})

	for i, r := range all {
		if r.id == id {
			return Rank{Position: i + 1, Total: len(all)}
		}
	}
	return Rank{Total: len(all)}
}
