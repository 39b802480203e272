package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore tracks which posts have already been staged, so repeated
// batch runs do not rebuild bundles the publisher has already consumed.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func processedKey(feed, id string) string {
	return fmt.Sprintf("bundles:processed:%s:%s", feed, id)
}

// IsProcessed returns true if the post was already staged for the feed.
func (s *RedisStore) IsProcessed(ctx context.Context, feed, id string) (bool, error) {
	_, err := s.rdb.Get(ctx, processedKey(feed, id)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkProcessed marks a post as staged for the given duration.
func (s *RedisStore) MarkProcessed(ctx context.Context, feed, id string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, processedKey(feed, id), "1", d).Err()
}
