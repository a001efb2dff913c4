package api

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ssargent/riftvault/pkg/players"
	"github.com/ssargent/riftvault/pkg/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port           int
	Bind           string
	DataDir        string
	MaxUploadBytes int64
	Players        *players.Directory
}

// MatchSummary is the list view of a stored match
type MatchSummary struct {
	Hash        string     `json:"hash"`
	MatchID     string     `json:"match_id"`
	FileName    string     `json:"file_name"`
	FileSize    int64      `json:"file_size"`
	Version     string     `json:"version"`
	GameVersion string     `json:"game_version"`
	GameLength  int64      `json:"game_length"`
	Players     int        `json:"players"`
	MatchDate   *time.Time `json:"match_date,omitempty"`
	MVPPlayer   string     `json:"mvp_player,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func summarize(m *storage.Match) MatchSummary {
	s := MatchSummary{
		Hash:      m.FileHash,
		MatchID:   m.MatchID,
		FileName:  m.FileName,
		FileSize:  m.FileSize,
		MatchDate: m.MatchDate,
		MVPPlayer: m.MVPPlayer,
		CreatedAt: m.CreatedAt,
	}
	if m.Data != nil {
		s.Version = m.Data.Version.String()
		s.GameVersion = m.Data.GameVersion
		s.GameLength = m.Data.Metadata.GameLength
		s.Players = len(m.Data.Players())
	}
	return s
}

// UpdateMatchRequest is the body of PUT /matches/{hash}. An empty match_date
// clears the date.
type UpdateMatchRequest struct {
	MVPPlayer *string             `json:"mvp_player,omitempty"`
	MatchDate *string             `json:"match_date,omitempty"`
	DraftData jsoniter.RawMessage `json:"draft_data,omitempty"`
}
