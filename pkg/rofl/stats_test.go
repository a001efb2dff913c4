package rofl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerStats_Coercion(t *testing.T) {
	p := PlayerStats{
		"CHAMPIONS_KILLED":       "7",
		"NUM_DEATHS":             float64(2),
		"ASSISTS":                " 11 ",
		"MINIONS_KILLED":         "180",
		"NEUTRAL_MINIONS_KILLED": "24",
		"GOLD_EARNED":            "not a number",
		"LEVEL":                  float64(18),
		"ITEM0":                  "3031",
		"ITEM3":                  float64(1001),
		"WIN":                    "Fail",
	}

	assert.Equal(t, int64(7), p.Kills())
	assert.Equal(t, int64(2), p.Deaths())
	assert.Equal(t, int64(11), p.Assists())
	assert.Equal(t, int64(204), p.CreepScore())
	assert.Equal(t, int64(0), p.GoldEarned())
	assert.Equal(t, int64(0), p.DamageDealt())
	assert.Equal(t, "18", p.Text("LEVEL"))
	assert.Equal(t, "", p.Text("MISSING"))
	assert.Equal(t, []int64{3031, 0, 0, 1001, 0, 0, 0}, p.Items())
	assert.False(t, p.Won())
}

func TestPlayerStats_DisplayName(t *testing.T) {
	tests := []struct {
		name  string
		stats PlayerStats
		want  string
	}{
		{name: "riot id", stats: PlayerStats{"RIOT_ID_GAME_NAME": "Faker", "NAME": "old"}, want: "Faker"},
		{name: "summoner name", stats: PlayerStats{"NAME": "old"}, want: "old"},
		{name: "empty riot id", stats: PlayerStats{"RIOT_ID_GAME_NAME": "", "NAME": "old"}, want: "old"},
		{name: "none", stats: PlayerStats{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.DisplayName())
		})
	}
}

func TestPlayerStats_Won(t *testing.T) {
	assert.True(t, PlayerStats{"WIN": "Win"}.Won())
	assert.False(t, PlayerStats{"WIN": "win"}.Won())
	assert.False(t, PlayerStats{"WIN": true}.Won())
	assert.False(t, PlayerStats{}.Won())
}
