package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sdr-assist/sdr-backend/internal/analytics/domain"
)

const (
	dashboardKey = "sdr:analytics:dashboard"
	dashboardTTL = 30 * time.Second
)

// ErrMiss is returned when the cached value is absent or expired.
var ErrMiss = errors.New("cache miss")

// DashboardCache keeps the dashboard stats as a JSON value with a short TTL
// so repeated dashboard loads do not hammer the aggregate query.
type DashboardCache struct {
	client *redis.Client
}

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

func (c *DashboardCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	data, err := c.client.Get(ctx, dashboardKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &stats, nil
}

func (c *DashboardCache) Set(ctx context.Context, stats *domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, dashboardKey, data, dashboardTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *DashboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}
