package rofl

import (
	"bytes"
	"os"
	"path/filepath"
	"time"
)

// Version identifies the on-disk container layout.
type Version uint8

const (
	VersionUnknown Version = 0
	Version1       Version = 1
	Version2       Version = 2
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "v1"
	case Version2:
		return "v2"
	default:
		return "unknown"
	}
}

// Replay is a decoded replay container.
type Replay struct {
	Version     Version  `json:"version"`
	Filename    string   `json:"filename"`
	GameVersion string   `json:"gameVersion"`
	Metadata    Metadata `json:"metadata"`

	// Version 1 only
	Lengths         *LengthBlock `json:"lengths,omitempty"`
	ReplaySignature []byte       `json:"-"`
}

// Players returns the per-player records.
func (r *Replay) Players() []PlayerStats {
	return r.Metadata.Stats
}

// Duration returns the game length.
func (r *Replay) Duration() time.Duration {
	return r.Metadata.Duration()
}

// section is what a version reader extracts before the dispatcher assembles a Replay.
type section struct {
	gameVersion string
	metadata    Metadata
	lengths     *LengthBlock
	signature   []byte
}

// Sniff returns the container version selected by the signature at offset 0.
// It reads nothing past the signature.
func Sniff(buf []byte) (Version, error) {
	head, err := span(buf, 0, SignatureSize, "signature")
	if err != nil {
		return VersionUnknown, newUnrecognizedFormatError(buf[:min(len(buf), SignatureSize)], err)
	}

	switch {
	case bytes.Equal(head, SignatureV1):
		return Version1, nil
	case bytes.Equal(head, SignatureV2):
		return Version2, nil
	default:
		return VersionUnknown, newUnrecognizedFormatError(head, nil)
	}
}

// Decode decodes a replay container. filename is recorded as given; it is not
// derived from the bytes. buf is not modified and not retained.
func Decode(buf []byte, filename string) (*Replay, error) {
	version, err := Sniff(buf)
	if err != nil {
		return nil, err
	}

	var sec *section
	switch version {
	case Version1:
		sec, err = readV1(buf)
	case Version2:
		sec, err = readV2(buf)
	}
	if err != nil {
		return nil, err
	}

	// Prefer the version read from the header; fall back to the metadata copy.
	gameVersion := sec.gameVersion
	if gameVersion == "" {
		gameVersion = sec.metadata.GameVersion
	}

	return &Replay{
		Version:         version,
		Filename:        filename,
		GameVersion:     gameVersion,
		Metadata:        sec.metadata,
		Lengths:         sec.lengths,
		ReplaySignature: sec.signature,
	}, nil
}

// DecodeFile is a convenience function that reads and decodes a replay file.
// The base name of path is used as the filename.
func DecodeFile(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, filepath.Base(path))
}
