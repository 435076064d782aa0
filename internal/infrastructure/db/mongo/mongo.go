// Package mongo persists accounts and catalog records for the stand-in
// upstream service.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "storefront-upstream-stub"
)

// Config holds the stand-in's MongoDB settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store is an open database with its repositories and indexes in place.
type Store struct {
	Users    *UserRepository
	Products *ProductRepository

	client *mongo.Client
}

// Open connects to cfg.URI and prepares the users and products collections.
// The returned Store is ready to serve; callers release it with Close.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName(appName))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	s := &Store{client: client}
	if err := s.Ping(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}

	db := client.Database(cfg.Database)
	s.Users = NewUserRepository(db)
	s.Products = NewProductRepository(db)

	if err := s.Users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("users indexes: %w", err)
	}
	if err := s.Products.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("products indexes: %w", err)
	}
	return s, nil
}

// Ping checks the primary is reachable. It backs the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
