package store

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists the snapshot as one Redis string value. Closest
// server-side analog of the browser local-storage blob the state format
// originates from.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, doc []byte) error {
	return s.client.Set(ctx, SnapshotKey, doc, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	doc, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return doc, nil
}
