package players

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectory_CanonicalID(t *testing.T) {
	d := NewDirectory(map[string]string{
		"smurf":  "main",
		"smurf2": "smurf",
		"loopA":  "loopB",
		"loopB":  "loopA",
		"self":   "self",
		"":       "ignored",
	}, nil)

	tests := []struct {
		in   string
		want string
	}{
		{in: "main", want: "main"},
		{in: "smurf", want: "main"},
		{in: "smurf2", want: "main"},
		{in: "stranger", want: "stranger"},
		{in: "self", want: "self"},
		{in: "loopA", want: "loopB"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, d.CanonicalID(tt.in))
		})
	}
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []string{"smurf", "smurf2"}, d.Aliases("main"))
	assert.Equal(t, []string{"loopA"}, d.Aliases("loopB"))
	assert.Nil(t, d.Aliases("stranger"))
}

func TestDirectory_DisplayName(t *testing.T) {
	d := NewDirectory(map[string]string{"smurf": "main"}, map[string]string{"main": "Main Player"})

	assert.Equal(t, "Main Player", d.DisplayName("main", "fallback"))
	assert.Equal(t, "Main Player", d.DisplayName("smurf", "fallback"))
	assert.Equal(t, "fallback", d.DisplayName("other", "fallback"))
}

func TestDirectory_Nil(t *testing.T) {
	var d *Directory

	assert.Equal(t, "x", d.CanonicalID("x"))
	assert.Equal(t, "fb", d.DisplayName("x", "fb"))
	assert.Nil(t, d.Aliases("x"))
	assert.Equal(t, 0, d.Len())

	var zero Directory
	assert.Equal(t, "x", zero.CanonicalID("x"))
	assert.Equal(t, "fb", zero.DisplayName("x", "fb"))
}
