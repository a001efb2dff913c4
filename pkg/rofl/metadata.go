package rofl

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// numberJSON keeps number literals as json.Number so the modeled fields can
// be coerced without losing precision or the original text.
var numberJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Metadata is the decoded metadata block of a replay.
//
// The modeled keys are coerced from strings or any numeric form. A modeled key
// whose value cannot be coerced is kept in Extra like any unmodeled key, so a
// stored replay keeps everything the client wrote. Keys that were present are
// written back with their original text unless the field was changed.
type Metadata struct {
	GameLength      int64          // milliseconds
	GameVersion     string         // may be empty for version 2 containers
	LastGameChunkID int64
	LastKeyFrameID  int64
	Stats           []PlayerStats  // statsJson, already decoded
	Extra           map[string]any // unmodeled or uncoercible keys

	// source text of the modeled keys that were present
	raw map[string]jsoniter.RawMessage
}

// GameMinutes returns the game length in minutes.
func (m *Metadata) GameMinutes() float64 {
	return float64(m.GameLength) / 1000 / 60
}

// Duration returns the game length as time.Duration.
func (m *Metadata) Duration() time.Duration {
	return time.Duration(m.GameLength) * time.Millisecond
}

// MarshalJSON implements json.Marshaler. statsJson is always written as an array.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+5)
	for k, v := range m.Extra {
		out[k] = v
	}
	m.put(out, keyGameLength, m.GameLength, m.GameLength == 0)
	m.put(out, keyGameVersion, m.GameVersion, m.GameVersion == "")
	m.put(out, keyLastGameChunkID, m.LastGameChunkID, m.LastGameChunkID == 0)
	m.put(out, keyLastKeyFrameID, m.LastKeyFrameID, m.LastKeyFrameID == 0)

	stats := m.Stats
	if stats == nil {
		stats = []PlayerStats{}
	}
	out[keyStatsJSON] = stats
	return json.Marshal(out)
}

// put writes one modeled field. The source text wins while it still decodes
// to value; a zero value with no source is left out.
func (m Metadata) put(out map[string]any, key string, value any, zero bool) {
	raw, ok := m.raw[key]
	if !ok {
		if !zero {
			out[key] = value
		}
		return
	}

	var src Metadata
	if v, err := decodeValue(raw); err == nil && src.set(key, v) && src.field(key) == value {
		out[key] = raw
		return
	}
	out[key] = value
}

// UnmarshalJSON implements json.Unmarshaler for the stored form, where
// statsJson is an array. The container form is handled by decodeMetadata.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var stats []PlayerStats
	if raw, ok := fields[keyStatsJSON]; ok && raw != nil {
		if err := json.Unmarshal(raw, &stats); err != nil {
			return fmt.Errorf("statsJson: %w", err)
		}
	}
	if stats == nil {
		stats = []PlayerStats{}
	}

	var decoded Metadata
	if err := decoded.assign(fields); err != nil {
		return err
	}
	decoded.Stats = stats
	*m = decoded
	return nil
}

// assign fills the modeled fields and Extra from an already split object.
// statsJson is skipped: its form depends on where the object came from.
func (m *Metadata) assign(fields map[string]jsoniter.RawMessage) error {
	for key, raw := range fields {
		if key == keyStatsJSON {
			continue
		}

		v, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		if m.set(key, v) {
			if m.raw == nil {
				m.raw = make(map[string]jsoniter.RawMessage)
			}
			m.raw[key] = raw
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]any)
		}
		m.Extra[key] = v
	}
	return nil
}

// set coerces v into the field for key. It reports false for unmodeled keys
// and for values that do not coerce.
func (m *Metadata) set(key string, v any) bool {
	var ok bool
	switch key {
	case keyGameLength:
		m.GameLength, ok = toInt(v)
	case keyGameVersion:
		m.GameVersion, ok = toText(v)
	case keyLastGameChunkID:
		m.LastGameChunkID, ok = toInt(v)
	case keyLastKeyFrameID:
		m.LastKeyFrameID, ok = toInt(v)
	}
	return ok
}

func (m *Metadata) field(key string) any {
	switch key {
	case keyGameLength:
		return m.GameLength
	case keyGameVersion:
		return m.GameVersion
	case keyLastGameChunkID:
		return m.LastGameChunkID
	case keyLastKeyFrameID:
		return m.LastKeyFrameID
	}
	return nil
}

// decodeValue decodes one member of the outer object. A null member arrives
// as an empty message.
func decodeValue(raw jsoniter.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := numberJSON.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeMetadata runs the two-pass decode over a metadata region taken from a
// container. offset is the absolute position of the region, used in errors.
func decodeMetadata(region []byte, offset int64) (Metadata, error) {
	if !utf8.Valid(region) {
		return Metadata{}, newMalformedMetadataError(StageUTF8, newEncodingError("metadata", offset))
	}

	// Pass 1: the outer object. statsJson is still encoded text at this point.
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(region, &fields); err != nil {
		return Metadata{}, newMalformedMetadataError(StageOuterJSON, err)
	}
	if fields == nil {
		return Metadata{}, newMalformedMetadataError(StageOuterJSON, errors.New("metadata document is null"))
	}

	var md Metadata
	if err := md.assign(fields); err != nil {
		return Metadata{}, newMalformedMetadataError(StageOuterJSON, err)
	}

	raw, ok := fields[keyStatsJSON]
	if !ok {
		return Metadata{}, newMalformedMetadataError(StageStatsField, errors.New("statsJson field is missing"))
	}
	if raw == nil {
		return Metadata{}, newMalformedMetadataError(StageStatsField, errors.New("statsJson is null"))
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return Metadata{}, newMalformedMetadataError(StageStatsField, fmt.Errorf("statsJson is not a string: %w", err))
	}

	// Pass 2: the statistics document inside statsJson.
	stats, err := decodeStats([]byte(encoded))
	if err != nil {
		return Metadata{}, newMalformedMetadataError(StageInnerJSON, err)
	}
	md.Stats = stats

	return md, nil
}

// decodeStats decodes the statsJson document. It is normally an array of
// records; a single record object is accepted as a one element array.
func decodeStats(doc []byte) ([]PlayerStats, error) {
	var stats []PlayerStats
	if err := json.Unmarshal(doc, &stats); err != nil {
		var record PlayerStats
		if json.Unmarshal(doc, &record) != nil || record == nil {
			return nil, err
		}
		return []PlayerStats{record}, nil
	}
	if stats == nil {
		return nil, errors.New("statsJson decodes to null")
	}
	for i, record := range stats {
		if record == nil {
			return nil, fmt.Errorf("statsJson record %d is null", i)
		}
	}
	return stats, nil
}
