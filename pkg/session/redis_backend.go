package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend implements Backend on a Redis server. Rows are stored as
// JSON under a prefixed key. A server-side TTL acts as a storage bound
// only; session expiry itself is enforced by the canary at read time.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type redisRecord struct {
	Key  string `json:"skey,omitempty"`
	Data string `json:"sdata"`
}

// NewRedisBackend creates a Redis session backend. A zero ttl stores rows
// without expiration.
func NewRedisBackend(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisBackend {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisBackend{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisBackend) Get(ctx context.Context, id string) (Record, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	var rec redisRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, false, err
	}

	return Record{Key: rec.Key, Data: rec.Data}, true, nil
}

func (r *RedisBackend) Put(ctx context.Context, id string, rec Record) error {
	raw, err := json.Marshal(redisRecord{Key: rec.Key, Data: rec.Data})
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.prefix+id, raw, r.ttl).Err()
}

func (r *RedisBackend) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
