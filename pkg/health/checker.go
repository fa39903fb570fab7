package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const checkTimeout = 2 * time.Second

// DatabaseChecker returns a health check function for the snapshot store pool
func DatabaseChecker(pool *pgxpool.Pool) func() error {
	if pool == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		return pool.Ping(ctx)
	}
}

// RedisChecker returns a health check function for the result cache
func RedisChecker(client redis.UniversalClient) func() error {
	if client == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}
