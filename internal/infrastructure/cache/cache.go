package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"fledger/internal/config"
)

// New connects to the Redis-protocol price feed. The ledger treats it as
// read-only; keys are maintained by the external oracle collector.
func New(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	dbIndex, err := strconv.Atoi(cfg.DB)
	if err != nil {
		dbIndex = 0
	}

	opts := &redis.Options{
		Addr:            addr,
		Password:        cfg.Password,
		DB:              dbIndex,
		DialTimeout:     1 * time.Second,
		ReadTimeout:     400 * time.Millisecond,
		WriteTimeout:    400 * time.Millisecond,
		PoolSize:        100,
		MinIdleConns:    10,
		PoolTimeout:     750 * time.Millisecond,
		ConnMaxIdleTime: 90 * time.Second,
		PoolFIFO:        true,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 200 * time.Millisecond,

		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			// Visible in CLIENT LIST when tracing feed reads.
			_ = cn.ClientSetName(ctx, "fledger").Err()
			return nil
		},
	}

	rdb := redis.NewClient(opts)

	// health check
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}
