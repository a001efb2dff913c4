package rofl

import (
	stdjson "encoding/json"
	"fmt"
	"strconv"
)

// Per-player record keys
const (
	StatPUUID                = "PUUID"
	StatRiotIDGameName       = "RIOT_ID_GAME_NAME"
	StatName                 = "NAME"
	StatWin                  = "WIN"
	StatSkin                 = "SKIN"
	StatTeam                 = "TEAM"
	StatTeamPosition         = "TEAM_POSITION"
	StatChampionsKilled      = "CHAMPIONS_KILLED"
	StatNumDeaths            = "NUM_DEATHS"
	StatAssists              = "ASSISTS"
	StatMinionsKilled        = "MINIONS_KILLED"
	StatNeutralMinionsKilled = "NEUTRAL_MINIONS_KILLED"
	StatGoldEarned           = "GOLD_EARNED"
	StatDamageToChampions    = "TOTAL_DAMAGE_DEALT_TO_CHAMPIONS"
	StatDamageTaken          = "TOTAL_DAMAGE_TAKEN"
)

// ItemSlots is the number of ITEMn fields on a record (ITEM0..ITEM6).
const ItemSlots = 7

// PlayerStats is one participant record from statsJson.
//
// The client writes most numbers as strings, so the accessors coerce. Keys that
// are not modeled stay reachable through Text and Number.
type PlayerStats map[string]any

// Text returns the field as a string. Numbers are formatted without exponent.
func (p PlayerStats) Text(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case stdjson.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Number returns the field coerced to a float. Missing or unparsable values are 0.
func (p PlayerStats) Number(key string) float64 {
	f, _ := toFloat(p[key])
	return f
}

// Int returns the field coerced to an integer, truncating any fraction.
// Missing or unparsable values are 0.
func (p PlayerStats) Int(key string) int64 {
	n, _ := toInt(p[key])
	return n
}

func (p PlayerStats) PUUID() string { return p.Text(StatPUUID) }

// DisplayName prefers the Riot ID game name and falls back to the summoner name.
func (p PlayerStats) DisplayName() string {
	if name := p.Text(StatRiotIDGameName); name != "" {
		return name
	}
	return p.Text(StatName)
}

// Won reports whether WIN holds the literal "Win".
func (p PlayerStats) Won() bool { return p.Text(StatWin) == WinValue }

func (p PlayerStats) Champion() string { return p.Text(StatSkin) }
func (p PlayerStats) Team() string     { return p.Text(StatTeam) }
func (p PlayerStats) Position() string { return p.Text(StatTeamPosition) }

func (p PlayerStats) Kills() int64   { return p.Int(StatChampionsKilled) }
func (p PlayerStats) Deaths() int64  { return p.Int(StatNumDeaths) }
func (p PlayerStats) Assists() int64 { return p.Int(StatAssists) }

// CreepScore is lane minions plus neutral monsters.
func (p PlayerStats) CreepScore() int64 {
	return p.Int(StatMinionsKilled) + p.Int(StatNeutralMinionsKilled)
}

func (p PlayerStats) GoldEarned() int64  { return p.Int(StatGoldEarned) }
func (p PlayerStats) DamageDealt() int64 { return p.Int(StatDamageToChampions) }
func (p PlayerStats) DamageTaken() int64 { return p.Int(StatDamageTaken) }

// Items returns the ITEM0..ITEM6 slots in order. Empty slots are 0.
func (p PlayerStats) Items() []int64 {
	items := make([]int64, ItemSlots)
	for i := range items {
		items[i] = p.Int("ITEM" + strconv.Itoa(i))
	}
	return items
}
