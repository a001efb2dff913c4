// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ssargent/riftvault/pkg/storage"
)

// MatchStore defines the match store operations the API uses
type MatchStore interface {
	Exists(hash string) (bool, error)
	Put(m *storage.Match, raw []byte) error
	Get(hash string) (*storage.Match, error)
	GetByMatchID(matchID string) (*storage.Match, error)
	List() ([]*storage.Match, error)
	Update(hash string, u storage.MatchUpdate) (*storage.Match, error)
	Delete(hash string) error
	File(hash string) ([]byte, error)
	Stats() (*storage.Stats, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, store MatchStore, config ServerConfig, logger logrus.FieldLogger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
