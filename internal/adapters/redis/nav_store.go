package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vendosaas/vendo/internal/domain/nav"
)

// NavStore is a Redis-based navigation state store. Entries carry a fixed
// TTL rather than tracking the session expiry; the session service deletes
// them explicitly on logout, the TTL only catches abandoned sessions.
type NavStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewNavStore creates a Redis navigation store with the given entry TTL.
// A non-positive TTL defaults to 8h.
func NewNavStore(client redis.UniversalClient, ttl time.Duration) *NavStore {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &NavStore{
		client: client,
		prefix: "vendo:nav:",
		ttl:    ttl,
	}
}

func (s *NavStore) Save(ctx context.Context, sessionID string, state nav.State) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal nav state: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sessionID, data, s.ttl).Err()
}

func (s *NavStore) Get(ctx context.Context, sessionID string) (nav.State, error) {
	if sessionID == "" {
		return nav.State{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nav.State{}, ErrNotFound
		}
		return nav.State{}, fmt.Errorf("redis get: %w", err)
	}

	var state nav.State
	if unmarshalErr := json.Unmarshal([]byte(data), &state); unmarshalErr != nil {
		return nav.State{}, fmt.Errorf("unmarshal nav state: %w", unmarshalErr)
	}

	return state, nil
}

func (s *NavStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to delete
	}

	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
