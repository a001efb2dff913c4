// Package storage persists matches and their raw replay files in pebble.
//
// Keys:
//
//	match/<sha1>      JSON encoded Match
//	file/<sha1>       zstd compressed replay bytes
//	matchid/<id>      sha1 of the match with that game id
//
// Several files can carry the same game id (two recordings of one game). The
// index keeps the first stored one and moves to a remaining file when that
// one is deleted.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/ksuid"
)

var (
	matchPrefix   = []byte("match/")
	filePrefix    = []byte("file/")
	matchIDPrefix = []byte("matchid/")
)

type DefaultStorage struct {
	db  *pebble.DB
	enc *zstd.Encoder
	dec *zstd.Decoder

	// serializes read-modify-write sequences
	mu sync.Mutex
}

func NewDefaultStorage(path string) (*DefaultStorage, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &DefaultStorage{db: db, enc: enc, dec: dec}, nil
}

func key(prefix []byte, id string) []byte {
	k := make([]byte, 0, len(prefix)+len(id))
	k = append(k, prefix...)
	return append(k, id...)
}

// get copies the value out before releasing it.
func (s *DefaultStorage) get(k []byte) ([]byte, error) {
	data, closer, err := s.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return bytes.Clone(data), nil
}

// Exists reports whether a match with the given file hash is stored.
func (s *DefaultStorage) Exists(hash string) (bool, error) {
	_, err := s.get(key(matchPrefix, hash))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Put stores a new match and its raw file. ID, CreatedAt and UpdatedAt are
// assigned here. A match whose FileHash is already stored is rejected with ErrDuplicate.
func (s *DefaultStorage) Put(m *Match, raw []byte) error {
	if m == nil || m.FileHash == "" {
		return ErrInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.Exists(m.FileHash)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	now := time.Now().UTC()
	m.ID = ksuid.New()
	m.CreatedAt = now
	m.UpdatedAt = now

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key(matchPrefix, m.FileHash), data, nil); err != nil {
		return err
	}
	if err := batch.Set(key(filePrefix, m.FileHash), s.enc.EncodeAll(raw, nil), nil); err != nil {
		return err
	}
	if m.MatchID != "" {
		indexed, err := s.indexedHash(m.MatchID)
		if err != nil {
			return err
		}
		if indexed == "" {
			if err := batch.Set(key(matchIDPrefix, m.MatchID), []byte(m.FileHash), nil); err != nil {
				return err
			}
		}
	}

	return batch.Commit(pebble.Sync)
}

// indexedHash returns the hash the match id index points at, or "" when the
// entry is missing or points at a match that is no longer stored.
func (s *DefaultStorage) indexedHash(matchID string) (string, error) {
	hash, err := s.get(key(matchIDPrefix, matchID))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	exists, err := s.Exists(string(hash))
	if err != nil || !exists {
		return "", err
	}
	return string(hash), nil
}

func (s *DefaultStorage) Get(hash string) (*Match, error) {
	data, err := s.get(key(matchPrefix, hash))
	if err != nil {
		return nil, err
	}

	var m Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", hash, err)
	}
	return &m, nil
}

// GetByMatchID looks a match up by its game id (for example NA1_5270847442).
func (s *DefaultStorage) GetByMatchID(matchID string) (*Match, error) {
	hash, err := s.get(key(matchIDPrefix, matchID))
	if err != nil {
		return nil, err
	}
	return s.Get(string(hash))
}

// List returns every stored match, newest game first. Matches are ordered by
// the numeric suffix of their match id, then by creation time.
func (s *DefaultStorage) List() ([]*Match, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: matchPrefix,
		UpperBound: upperBound(matchPrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	matches := []*Match{}
	for iter.First(); iter.Valid(); iter.Next() {
		var m Match
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Key(), err)
		}
		matches = append(matches, &m)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].GameNumber(), matches[j].GameNumber()
		if a != b {
			return a > b
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// Update applies the editable fields to a stored match and returns the result.
func (s *DefaultStorage) Update(hash string, u MatchUpdate) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Get(hash)
	if err != nil {
		return nil, err
	}

	u.apply(m)
	m.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode match: %w", err)
	}
	if err := s.db.Set(key(matchPrefix, hash), data, pebble.Sync); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the match and its file. The match id index entry is only
// touched when it points at hash: it moves to another stored file with the
// same match id, or is removed when there is none.
func (s *DefaultStorage) Delete(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Get(hash)
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete(key(matchPrefix, hash), nil); err != nil {
		return err
	}
	if err := batch.Delete(key(filePrefix, hash), nil); err != nil {
		return err
	}
	if m.MatchID != "" {
		if err := s.reindex(batch, m.MatchID, hash); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// reindex updates the match id index in batch for the removal of hash.
func (s *DefaultStorage) reindex(batch *pebble.Batch, matchID, hash string) error {
	indexed, err := s.get(key(matchIDPrefix, matchID))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if string(indexed) != hash {
		return nil
	}

	matches, err := s.List()
	if err != nil {
		return err
	}
	// List orders files of one game newest first; prefer the oldest remaining one
	for i := len(matches) - 1; i >= 0; i-- {
		other := matches[i]
		if other.MatchID == matchID && other.FileHash != hash {
			return batch.Set(key(matchIDPrefix, matchID), []byte(other.FileHash), nil)
		}
	}
	return batch.Delete(key(matchIDPrefix, matchID), nil)
}

// File returns the raw replay bytes for a stored match.
func (s *DefaultStorage) File(hash string) ([]byte, error) {
	data, err := s.get(key(filePrefix, hash))
	if err != nil {
		return nil, err
	}
	raw, err := s.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", hash, err)
	}
	return raw, nil
}

func (s *DefaultStorage) Stats() (*Stats, error) {
	st := &Stats{}

	matches, err := s.List()
	if err != nil {
		return nil, err
	}
	st.Matches = len(matches)
	for _, m := range matches {
		st.RawBytes += m.FileSize
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: filePrefix,
		UpperBound: upperBound(filePrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		st.StoredBytes += int64(len(iter.Value()))
	}
	return st, iter.Error()
}

func (s *DefaultStorage) Close() error {
	s.dec.Close()
	s.enc.Close()
	return s.db.Close()
}

// upperBound returns the smallest key greater than every key with prefix.
func upperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
