package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ripple/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern. On a hit, dest is populated from
// the cached JSON. On a miss, fetch is invoked to load dest from the source of
// truth and the result is stored with the given TTL. Cache failures are
// swallowed so a degraded Redis never breaks reads; the metrics hook still
// counts them.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	ctx, span := observability.TraceRedisOperation(ctx, "aside")
	defer span.End()

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry, drop it and fall through to the source of truth.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if encoded, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}
