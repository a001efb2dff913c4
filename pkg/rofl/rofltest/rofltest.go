// Package rofltest builds replay containers for tests.
package rofltest

import (
	"encoding/binary"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/ssargent/riftvault/pkg/rofl"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LengthBlockHeader is the Header value written into version 1 length blocks.
const LengthBlockHeader = 0x1A

// Player describes one participant record. Numbers are written as strings,
// the way the game client writes them.
type Player struct {
	PUUID    string
	Name     string
	Team     string
	Position string
	Champion string
	Win      bool
	Kills    int
	Deaths   int
	Assists  int
	Minions  int
	Neutral  int
	Gold     int
	Damage   int
	Taken    int
	Items    []int
}

// Record converts p into a statsJson record.
func (p Player) Record() map[string]any {
	win := "Fail"
	if p.Win {
		win = rofl.WinValue
	}
	r := map[string]any{
		rofl.StatPUUID:                p.PUUID,
		rofl.StatRiotIDGameName:       p.Name,
		rofl.StatTeam:                 p.Team,
		rofl.StatTeamPosition:         p.Position,
		rofl.StatSkin:                 p.Champion,
		rofl.StatWin:                  win,
		rofl.StatChampionsKilled:      strconv.Itoa(p.Kills),
		rofl.StatNumDeaths:            strconv.Itoa(p.Deaths),
		rofl.StatAssists:              strconv.Itoa(p.Assists),
		rofl.StatMinionsKilled:        strconv.Itoa(p.Minions),
		rofl.StatNeutralMinionsKilled: strconv.Itoa(p.Neutral),
		rofl.StatGoldEarned:           strconv.Itoa(p.Gold),
		rofl.StatDamageToChampions:    strconv.Itoa(p.Damage),
		rofl.StatDamageTaken:          strconv.Itoa(p.Taken),
	}
	for i := 0; i < rofl.ItemSlots; i++ {
		v := 0
		if i < len(p.Items) {
			v = p.Items[i]
		}
		r["ITEM"+strconv.Itoa(i)] = strconv.Itoa(v)
	}
	return r
}

// Metadata returns container-form metadata JSON: statsJson holds the records
// encoded as a JSON string. extra keys are merged into the outer object.
func Metadata(gameLength int64, gameVersion string, records []map[string]any, extra map[string]any) []byte {
	if records == nil {
		records = []map[string]any{}
	}
	inner, err := json.Marshal(records)
	if err != nil {
		panic(err)
	}
	outer := map[string]any{}
	for k, v := range extra {
		outer[k] = v
	}
	outer["gameLength"] = gameLength
	if gameVersion != "" {
		outer["gameVersion"] = gameVersion
	}
	outer["statsJson"] = string(inner)
	b, err := json.Marshal(outer)
	if err != nil {
		panic(err)
	}
	return b
}

// Match returns container-form metadata for the given players.
func Match(gameLength int64, gameVersion string, players ...Player) []byte {
	records := make([]map[string]any, len(players))
	for i, p := range players {
		records[i] = p.Record()
	}
	return Metadata(gameLength, gameVersion, records, nil)
}

// V1 builds a version 1 container with the metadata placed right after the header.
func V1(metadata []byte) []byte {
	return V1At(rofl.V1HeaderSize, metadata)
}

// V1At builds a version 1 container with the metadata at offset (>= header size).
// The gap between header and metadata is zero filled.
func V1At(offset int, metadata []byte) []byte {
	if offset < rofl.V1HeaderSize {
		panic("rofltest: metadata offset inside header")
	}
	total := offset + len(metadata)
	buf := make([]byte, total)
	copy(buf, rofl.SignatureV1)
	for i := 0; i < rofl.V1ReplaySignatureSize; i++ {
		buf[rofl.V1ReplaySignatureOffset+i] = 'A' + byte(i%26)
	}

	lb := buf[rofl.V1LengthBlockOffset:]
	binary.LittleEndian.PutUint16(lb[0x00:], LengthBlockHeader)
	binary.LittleEndian.PutUint32(lb[0x02:], uint32(total))
	binary.LittleEndian.PutUint32(lb[0x06:], uint32(offset))
	binary.LittleEndian.PutUint32(lb[0x0A:], uint32(len(metadata)))
	binary.LittleEndian.PutUint32(lb[0x0E:], uint32(total))
	binary.LittleEndian.PutUint32(lb[0x12:], 0)
	binary.LittleEndian.PutUint32(lb[0x16:], uint32(total))

	copy(buf[offset:], metadata)
	return buf
}

// V2 builds a version 2 container: inline game version, payload filler, then
// metadata and its int32 length at the end.
func V2(gameVersion string, payload, metadata []byte) []byte {
	if len(gameVersion) > 0xFF {
		panic("rofltest: game version longer than 255 bytes")
	}
	head := make([]byte, rofl.V2GameVersionOffset+len(gameVersion))
	copy(head, rofl.SignatureV2)
	head[rofl.V2GameVersionLengthOffset] = byte(len(gameVersion))
	copy(head[rofl.V2GameVersionOffset:], gameVersion)

	buf := make([]byte, 0, len(head)+len(payload)+len(metadata)+rofl.V2TrailerSize)
	buf = append(buf, head...)
	buf = append(buf, payload...)
	buf = append(buf, metadata...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(metadata)))
	return buf
}

// Team returns five players on one side with distinct positions.
func Team(team string, win bool, puuids ...string) []Player {
	positions := []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}
	players := make([]Player, 0, len(puuids))
	for i, id := range puuids {
		players = append(players, Player{
			PUUID:    id,
			Name:     "name-" + id,
			Team:     team,
			Position: positions[i%len(positions)],
			Champion: "Champ" + strconv.Itoa(i),
			Win:      win,
			Kills:    i + 1,
			Deaths:   2,
			Assists:  3,
			Minions:  100,
			Neutral:  20,
			Gold:     10000,
			Damage:   15000,
			Taken:    20000,
			Items:    []int{1001, 3006},
		})
	}
	return players
}
