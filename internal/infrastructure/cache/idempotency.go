package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyEntry is what the store keeps per request key: first an
// in-progress marker, then the recorded response.
type IdempotencyEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrEntryNotFound = errors.New("idempotency entry not found")

type IdempotencyStore struct {
	rdb    *redis.Client
	prefix string
}

func NewIdempotencyStore(rdb *redis.Client, prefix string) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, prefix: prefix}
}

func (s *IdempotencyStore) key(k string) string { return s.prefix + k }

// Reserve writes the in-progress marker unless the key already exists.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, e IdempotencyEntry, ttl time.Duration) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, s.key(key), payload, ttl).Result()
}

func (s *IdempotencyStore) Load(ctx context.Context, key string) (IdempotencyEntry, error) {
	var e IdempotencyEntry
	v, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, ErrEntryNotFound
	}
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, err
	}
	return e, nil
}

// Complete overwrites the marker with the final response.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, e IdempotencyEntry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(key), payload, ttl).Err()
}

// Release drops the key so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}
