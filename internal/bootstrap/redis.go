package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sdr-assist/sdr-backend/config"
)

// OpenRedis connects to Redis for the analytics cache. A missing Redis is
// not fatal; callers get nil and run uncached.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable at %s, running without dashboard cache: %v", cfg.Addr, err)
		client.Close()
		return nil
	}

	return client
}
