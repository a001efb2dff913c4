// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/riftvault/pkg/api"
	"github.com/ssargent/riftvault/pkg/storage"
)

// Store is the full match store the CLI works against
type Store interface {
	api.MatchStore
	Close() error
}

// StoreFactory opens the match store in dataDir
type StoreFactory func(dataDir string) (Store, error)

// OpenPebbleStore opens the pebble-backed match store
func OpenPebbleStore(dataDir string) (Store, error) {
	s, err := storage.NewDefaultStorage(dataDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Container holds all the dependencies for the application
type Container struct {
	storeFactory  StoreFactory
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeFactory:  OpenPebbleStore,
		serverFactory: api.NewServerFactory(),
	}
}

// GetStoreFactory returns the store factory
func (c *Container) GetStoreFactory() StoreFactory {
	return c.storeFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetStoreFactory allows overriding the store factory (for testing)
func (c *Container) SetStoreFactory(factory StoreFactory) {
	c.storeFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
