package storage

import (
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/riftvault/pkg/rofl"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Match is one stored replay and the user-editable data attached to it.
type Match struct {
	ID        ksuid.KSUID         `json:"id"`
	MatchID   string              `json:"matchId"`
	FileName  string              `json:"fileName"`
	FileSize  int64               `json:"fileSize"`
	FileHash  string              `json:"fileHash"`
	MatchDate *time.Time          `json:"matchDate,omitempty"`
	MVPPlayer string              `json:"mvpPlayer,omitempty"`
	Draft     jsoniter.RawMessage `json:"draft,omitempty"`
	Data      *rofl.Replay        `json:"data"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// GameNumber returns the numeric suffix of the match id (NA1_5270847442 -> 5270847442),
// or 0 when there is none.
func (m *Match) GameNumber() int64 {
	id := m.MatchID
	if i := strings.LastIndexAny(id, "_-"); i >= 0 {
		id = id[i+1:]
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// When returns the match date if set, otherwise when the match was stored.
func (m *Match) When() time.Time {
	if m.MatchDate != nil {
		return *m.MatchDate
	}
	return m.CreatedAt
}

// MatchUpdate holds the editable fields. Nil fields are left unchanged.
type MatchUpdate struct {
	MVPPlayer      *string             `json:"mvp_player,omitempty"`
	MatchDate      *time.Time          `json:"match_date,omitempty"`
	ClearMatchDate bool                `json:"clear_match_date,omitempty"`
	Draft          jsoniter.RawMessage `json:"draft_data,omitempty"`
}

func (u MatchUpdate) apply(m *Match) {
	if u.MVPPlayer != nil {
		m.MVPPlayer = *u.MVPPlayer
	}
	if u.ClearMatchDate {
		m.MatchDate = nil
	} else if u.MatchDate != nil {
		d := u.MatchDate.UTC()
		m.MatchDate = &d
	}
	if len(u.Draft) > 0 {
		m.Draft = append(jsoniter.RawMessage(nil), u.Draft...)
	}
}

// Stats describes what the store holds.
type Stats struct {
	Matches     int   `json:"matches"`
	RawBytes    int64 `json:"raw_bytes"`
	StoredBytes int64 `json:"stored_bytes"`
}

// StoreError represents a match store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

var (
	ErrNotFound  = &StoreError{"match not found"}
	ErrDuplicate = &StoreError{"match already stored"}
	ErrInvalid   = &StoreError{"invalid match"}
)
