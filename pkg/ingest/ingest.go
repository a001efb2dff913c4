// Package ingest turns uploaded replay files into stored matches.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/storage"
)

// DefaultMaxBytes is the upload ceiling used when none is configured.
const DefaultMaxBytes int64 = 64 << 20

var (
	ErrTooLarge    = errors.New("replay file exceeds upload limit")
	ErrEmptyUpload = errors.New("replay file is empty")
)

// Store is the part of the match store ingest needs.
type Store interface {
	Exists(hash string) (bool, error)
	Put(m *storage.Match, raw []byte) error
}

// Recorder receives decode and upload observations. The HTTP metrics implement it.
type Recorder interface {
	ObserveDecode(version, outcome string)
	ObserveUpload(size int)
}

// Upload is one replay file handed to the ingester.
type Upload struct {
	Filename  string
	Data      []byte
	MatchDate *time.Time
}

type Ingester struct {
	Store    Store
	Logger   logrus.FieldLogger
	MaxBytes int64
	Metrics  Recorder
}

func New(store Store, logger logrus.FieldLogger, maxBytes int64) *Ingester {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Ingester{Store: store, Logger: logger, MaxBytes: maxBytes}
}

// HashBytes returns the lowercase hex SHA-1 of b.
func HashBytes(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

// MatchIDFromFilename derives the game id from a client replay name:
// "NA1-5270847442.rofl" becomes "NA1_5270847442".
func MatchIDFromFilename(filename string) string {
	base := filepath.Base(filename)
	if strings.EqualFold(filepath.Ext(base), ".rofl") {
		base = base[:len(base)-len(".rofl")]
	}
	return strings.Replace(base, "-", "_", 1)
}

// Ingest validates, decodes and stores one upload. Files already stored are
// rejected with storage.ErrDuplicate before decoding. Decoder errors are
// wrapped, so errors.As still reaches the rofl error types.
func (i *Ingester) Ingest(ctx context.Context, u Upload) (*storage.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := i.Logger.WithFields(logrus.Fields{
		"filename": u.Filename,
		"size":     len(u.Data),
	})

	if len(u.Data) == 0 {
		log.Warn("rejected empty upload")
		return nil, ErrEmptyUpload
	}
	if i.MaxBytes > 0 && int64(len(u.Data)) > i.MaxBytes {
		log.WithField("max_bytes", i.MaxBytes).Warn("rejected oversized upload")
		return nil, ErrTooLarge
	}
	if i.Metrics != nil {
		i.Metrics.ObserveUpload(len(u.Data))
	}

	hash := HashBytes(u.Data)
	log = log.WithField("hash", hash)

	exists, err := i.Store.Exists(hash)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		log.Info("replay already stored")
		return nil, fmt.Errorf("%s: %w", u.Filename, storage.ErrDuplicate)
	}

	replay, err := rofl.Decode(u.Data, u.Filename)
	if err != nil {
		if i.Metrics != nil {
			i.Metrics.ObserveDecode(rofl.VersionUnknown.String(), rofl.Kind(err))
		}
		log.WithError(err).WithField("kind", rofl.Kind(err)).Warn("replay decode failed")
		return nil, fmt.Errorf("decode %s: %w", u.Filename, err)
	}
	if i.Metrics != nil {
		i.Metrics.ObserveDecode(replay.Version.String(), "ok")
	}

	m := &storage.Match{
		MatchID:   MatchIDFromFilename(u.Filename),
		FileName:  filepath.Base(u.Filename),
		FileSize:  int64(len(u.Data)),
		FileHash:  hash,
		MatchDate: u.MatchDate,
		Data:      replay,
	}
	if err := i.Store.Put(m, u.Data); err != nil {
		log.WithError(err).Error("store replay failed")
		return nil, fmt.Errorf("store %s: %w", u.Filename, err)
	}

	log.WithFields(logrus.Fields{
		"match_id": m.MatchID,
		"version":  replay.Version.String(),
		"players":  len(replay.Players()),
	}).Info("replay stored")
	return m, nil
}

// IngestReader reads at most MaxBytes from r and ingests the result.
func (i *Ingester) IngestReader(ctx context.Context, filename string, r io.Reader, date *time.Time) (*storage.Match, error) {
	var buf bytes.Buffer
	limit := i.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	n, err := buf.ReadFrom(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if n > limit {
		return nil, ErrTooLarge
	}
	return i.Ingest(ctx, Upload{Filename: filename, Data: buf.Bytes(), MatchDate: date})
}
