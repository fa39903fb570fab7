package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var cacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trust_engine_snapshot_cache_requests_total",
	Help: "Snapshot cache lookups by namespace and result (hit, miss, error)",
}, []string{"namespace", "result"})

// SnapshotCache stores computation results keyed by a digest of the exact
// input snapshot. Results never need invalidation: a changed snapshot hashes
// to a different key, and the TTL only bounds memory.
type SnapshotCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewSnapshotCache creates a cache over any go-redis client
func NewSnapshotCache(client redis.Cmdable, prefix string, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, prefix: prefix, ttl: ttl}
}

// SnapshotKey returns the cache key for input under namespace. encoding/json
// sorts map keys, so equal snapshots always produce the same key.
func SnapshotKey(prefix, namespace string, input interface{}) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	sum := sha256.Sum256(data)
	return prefix + namespace + ":" + hex.EncodeToString(sum[:]), nil
}

// Get loads a cached result into out. It returns false on a miss.
func (c *SnapshotCache) Get(ctx context.Context, namespace string, input interface{}, out interface{}) (bool, error) {
	key, err := SnapshotKey(c.prefix, namespace, input)
	if err != nil {
		return false, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheRequestsTotal.WithLabelValues(namespace, "miss").Inc()
		return false, nil
	}
	if err != nil {
		cacheRequestsTotal.WithLabelValues(namespace, "error").Inc()
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		cacheRequestsTotal.WithLabelValues(namespace, "error").Inc()
		return false, fmt.Errorf("decode cached %s: %w", namespace, err)
	}
	cacheRequestsTotal.WithLabelValues(namespace, "hit").Inc()
	return true, nil
}

// Set stores value as the result for input under namespace
func (c *SnapshotCache) Set(ctx context.Context, namespace string, input interface{}, value interface{}) error {
	key, err := SnapshotKey(c.prefix, namespace, input)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
