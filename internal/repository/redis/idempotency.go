package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const idemNS = "aerogo:v1:idem"

func KeyIdemReservation(flightID int64, idemKey string) string {
	return fmt.Sprintf("%s:reservations:%d:%s", idemNS, flightID, idemKey)
}

// IdempotencyStore dedupes retried reservation POSTs. A key is first locked
// with SETNX while the operation runs, then overwritten with the serialized
// result so replays return the original response.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *IdempotencyStore) AcquireLock(ctx context.Context, key string, lockTTL time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, "LOCK", lockTTL).Result()
}

func (s *IdempotencyStore) SaveResult(ctx context.Context, key string, jsonPayload string) error {
	return s.rdb.Set(ctx, key, "RES:"+jsonPayload, s.ttl).Err()
}

func (s *IdempotencyStore) GetResult(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if strings.HasPrefix(v, "RES:") {
		return strings.TrimPrefix(v, "RES:"), true, nil
	}

	return "", false, nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
