package rofl

import (
	stdjson "encoding/json"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{name: "integer literal", value: stdjson.Number("1800000"), want: 1800000, wantOK: true},
		{name: "float literal", value: stdjson.Number("1800000.0"), want: 1800000, wantOK: true},
		{name: "exponent", value: stdjson.Number("1.8e6"), want: 1800000, wantOK: true},
		{name: "fraction truncated", value: stdjson.Number("12.9"), want: 12, wantOK: true},
		{name: "beyond float precision", value: stdjson.Number("9007199254740993"), want: 9007199254740993, wantOK: true},
		{name: "numeric string", value: " 42 ", want: 42, wantOK: true},
		{name: "float64", value: float64(7), want: 7, wantOK: true},
		{name: "out of range", value: stdjson.Number("1e30"), wantOK: false},
		{name: "nan string", value: "NaN", wantOK: false},
		{name: "infinite string", value: "Inf", wantOK: false},
		{name: "word", value: "long", wantOK: false},
		{name: "bool", value: true, wantOK: false},
		{name: "null", value: nil, wantOK: false},
		{name: "object", value: map[string]any{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToText(t *testing.T) {
	got, ok := toText("14.1.2")
	assert.True(t, ok)
	assert.Equal(t, "14.1.2", got)

	got, ok = toText(stdjson.Number("14"))
	assert.True(t, ok)
	assert.Equal(t, "14", got)

	_, ok = toText(false)
	assert.False(t, ok)
	_, ok = toText(nil)
	assert.False(t, ok)
}

func TestMetadata_PutKeepsSourceText(t *testing.T) {
	fields := map[string]jsoniter.RawMessage{
		keyGameLength:  jsoniter.RawMessage(`1.8e6`),
		keyGameVersion: jsoniter.RawMessage(`14`),
		"gameMode":     jsoniter.RawMessage(`"CLASSIC"`),
	}
	var md Metadata
	require.NoError(t, md.assign(fields))
	assert.Equal(t, int64(1800000), md.GameLength)
	assert.Equal(t, "14", md.GameVersion)
	assert.Equal(t, "CLASSIC", md.Extra["gameMode"])

	out := map[string]any{}
	md.put(out, keyGameLength, md.GameLength, false)
	md.put(out, keyGameVersion, md.GameVersion, false)
	md.put(out, keyLastKeyFrameID, md.LastKeyFrameID, true)
	assert.Equal(t, fields[keyGameLength], out[keyGameLength])
	assert.Equal(t, fields[keyGameVersion], out[keyGameVersion])
	assert.NotContains(t, out, keyLastKeyFrameID)

	// a changed field is written as its typed value
	md.GameLength = 60000
	md.put(out, keyGameLength, md.GameLength, false)
	assert.Equal(t, int64(60000), out[keyGameLength])
}
