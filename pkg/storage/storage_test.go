package storage

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/rofl/rofltest"
)

func newTestStorage(t *testing.T) *DefaultStorage {
	t.Helper()
	s, err := NewDefaultStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testMatch(t *testing.T, matchID, hash string) (*Match, []byte) {
	t.Helper()
	raw := rofltest.V1(rofltest.Match(1800000, "14.1", rofltest.Team("100", true, "a", "b")...))
	replay, err := rofl.Decode(raw, matchID+".rofl")
	require.NoError(t, err)

	return &Match{
		MatchID:  matchID,
		FileName: matchID + ".rofl",
		FileSize: int64(len(raw)),
		FileHash: hash,
		Data:     replay,
	}, raw
}

func TestStorage_PutGet(t *testing.T) {
	s := newTestStorage(t)
	m, raw := testMatch(t, "NA1_100", "hash1")

	require.NoError(t, s.Put(m, raw))
	assert.False(t, m.ID.IsNil())
	assert.False(t, m.CreatedAt.IsZero())

	got, err := s.Get("hash1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "NA1_100", got.MatchID)
	assert.Equal(t, int64(len(raw)), got.FileSize)
	require.NotNil(t, got.Data)
	assert.Equal(t, rofl.Version1, got.Data.Version)
	assert.Equal(t, "14.1", got.Data.GameVersion)
	require.Len(t, got.Data.Players(), 2)
	assert.Equal(t, "a", got.Data.Players()[0].PUUID())
	assert.Equal(t, int64(1), got.Data.Players()[0].Kills())

	byID, err := s.GetByMatchID("NA1_100")
	require.NoError(t, err)
	assert.Equal(t, "hash1", byID.FileHash)

	file, err := s.File("hash1")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, file))

	ok, err := s.Exists("hash1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorage_Duplicate(t *testing.T) {
	s := newTestStorage(t)
	m, raw := testMatch(t, "NA1_100", "hash1")
	require.NoError(t, s.Put(m, raw))

	again, raw := testMatch(t, "NA1_100", "hash1")
	err := s.Put(again, raw)
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestStorage_Invalid(t *testing.T) {
	s := newTestStorage(t)
	assert.ErrorIs(t, s.Put(nil, nil), ErrInvalid)
	assert.ErrorIs(t, s.Put(&Match{}, nil), ErrInvalid)
}

func TestStorage_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByMatchID("NA1_1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.File("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Update("missing", MatchUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrNotFound)

	ok, err := s.Exists("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_ListOrder(t *testing.T) {
	s := newTestStorage(t)

	for _, tc := range []struct{ id, hash string }{
		{"NA1_5", "h5"},
		{"NA1_500", "h500"},
		{"NA1_42", "h42"},
		{"custom", "hc"},
	} {
		m, raw := testMatch(t, tc.id, tc.hash)
		require.NoError(t, s.Put(m, raw))
	}

	matches, err := s.List()
	require.NoError(t, err)
	require.Len(t, matches, 4)

	var ids []string
	for _, m := range matches {
		ids = append(ids, m.MatchID)
	}
	assert.Equal(t, []string{"NA1_500", "NA1_42", "NA1_5", "custom"}, ids)
}

func TestStorage_Update(t *testing.T) {
	s := newTestStorage(t)
	m, raw := testMatch(t, "NA1_100", "hash1")
	require.NoError(t, s.Put(m, raw))

	mvp := "a"
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	updated, err := s.Update("hash1", MatchUpdate{
		MVPPlayer: &mvp,
		MatchDate: &date,
		Draft:     []byte(`{"picks":["Ahri"]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.MVPPlayer)
	require.NotNil(t, updated.MatchDate)
	assert.True(t, date.Equal(*updated.MatchDate))
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	got, err := s.Get("hash1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.MVPPlayer)
	assert.JSONEq(t, `{"picks":["Ahri"]}`, string(got.Draft))
	assert.True(t, date.Equal(got.When()))

	cleared, err := s.Update("hash1", MatchUpdate{ClearMatchDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.MatchDate)
	assert.Equal(t, "a", cleared.MVPPlayer)
}

func TestStorage_Delete(t *testing.T) {
	s := newTestStorage(t)
	m, raw := testMatch(t, "NA1_100", "hash1")
	require.NoError(t, s.Put(m, raw))

	require.NoError(t, s.Delete("hash1"))

	_, err := s.Get("hash1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.File("hash1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByMatchID("NA1_100")
	assert.ErrorIs(t, err, ErrNotFound)

	// the same file can be stored again once deleted
	again, raw := testMatch(t, "NA1_100", "hash1")
	require.NoError(t, s.Put(again, raw))
}

func TestStorage_SharedMatchID(t *testing.T) {
	tests := []struct {
		name     string
		delete   []string
		wantHash string
	}{
		{name: "first stored file keeps the index", wantHash: "hash1"},
		{name: "deleting the indexed file moves the index", delete: []string{"hash1"}, wantHash: "hash2"},
		{name: "deleting another file leaves the index", delete: []string{"hash2"}, wantHash: "hash1"},
		{name: "deleting every file clears the index", delete: []string{"hash2", "hash1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t)
			first, raw := testMatch(t, "NA1_123", "hash1")
			require.NoError(t, s.Put(first, raw))
			second, raw := testMatch(t, "NA1_123", "hash2")
			require.NoError(t, s.Put(second, raw))

			for _, hash := range tt.delete {
				require.NoError(t, s.Delete(hash))
			}

			m, err := s.GetByMatchID("NA1_123")
			if tt.wantHash == "" {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, m.FileHash)
		})
	}
}

func TestStorage_PutRepairsStaleIndex(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.db.Set(key(matchIDPrefix, "NA1_9"), []byte("gone"), nil))

	m, raw := testMatch(t, "NA1_9", "hash9")
	require.NoError(t, s.Put(m, raw))

	got, err := s.GetByMatchID("NA1_9")
	require.NoError(t, err)
	assert.Equal(t, "hash9", got.FileHash)
}

func TestStorage_Stats(t *testing.T) {
	s := newTestStorage(t)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, st.Matches)

	m, raw := testMatch(t, "NA1_1", "h1")
	require.NoError(t, s.Put(m, raw))
	m2, raw2 := testMatch(t, "NA1_2", "h2")
	require.NoError(t, s.Put(m2, raw2))

	st, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, st.Matches)
	assert.Equal(t, int64(len(raw)+len(raw2)), st.RawBytes)
	assert.Greater(t, st.StoredBytes, int64(0))
}

func TestMatch_GameNumber(t *testing.T) {
	tests := []struct {
		id   string
		want int64
	}{
		{"NA1_5270847442", 5270847442},
		{"EUW1-123", 123},
		{"42", 42},
		{"custom", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			m := &Match{MatchID: tt.id}
			assert.Equal(t, tt.want, m.GameNumber())
		})
	}
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, []byte("match0"), upperBound([]byte("match/")))
	assert.Equal(t, []byte{0x02}, upperBound([]byte{0x01, 0xFF}))
	assert.Nil(t, upperBound([]byte{0xFF}))
}
