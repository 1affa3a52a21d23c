// Package sessions keeps the registry of live session token ids. A token id
// that is missing from the registry is expired or revoked.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type Storage struct {
	client *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Add(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("non-positive session ttl: %s", ttl)
	}
	return s.client.Set(ctx, keyPrefix+tokenID, userID, ttl).Err()
}

func (s *Storage) Exists(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, keyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) Remove(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, keyPrefix+tokenID).Err()
}
