// Package runlog persists rendered simulation logs so they can be
// retrieved after the request that produced them: the HTTP service
// saves every run it performs and serves it back by id.
package runlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edirooss/procsim/redis"
)

// ErrNotFound is returned when a run id has no stored log.
var ErrNotFound = errors.New("runlog: run not found")

const (
	runKeyPrefix = "procsim:run:"
	runIDsKey    = "procsim:runs"
)

// Store is Redis-backed persistence for rendered run logs.
type Store struct {
	client *redis.Client
	log    *zap.Logger
}

// NewStore wires a Store to an existing Redis client.
func NewStore(client *redis.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{client: client, log: log.Named("runlog")}
}

// Save stores text under a freshly generated run id and returns it.
func (s *Store) Save(ctx context.Context, text string) (string, error) {
	id := uuid.New().String()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKey(id), text, 0)
	pipe.SAdd(ctx, runIDsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("runlog: save: %w", err)
	}

	s.log.Debug("saved run", zap.String("run_id", id))
	return id, nil
}

// Get retrieves the log text for id.
func (s *Store) Get(ctx context.Context, id string) (string, error) {
	text, err := s.client.Get(ctx, runKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("runlog: get: %w", err)
	}
	return text, nil
}

// List returns every known run id.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, runIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("runlog: list: %w", err)
	}
	return ids, nil
}

func runKey(id string) string { return runKeyPrefix + id }
