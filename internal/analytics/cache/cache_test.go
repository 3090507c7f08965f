package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdr-assist/sdr-backend/internal/analytics/domain"
)

func setupCache(t *testing.T) (*DashboardCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDashboardCache(client), mr
}

func TestDashboardCache(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cache is a miss", func(t *testing.T) {
		c, _ := setupCache(t)

		_, err := c.Get(ctx)
		require.ErrorIs(t, err, ErrMiss)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		c, _ := setupCache(t)

		stats := &domain.DashboardStats{
			TotalProjects:      3,
			ActiveProjects:     2,
			TotalConversations: 7,
			OpenConversations:  5,
			TotalMessages:      42,
		}
		require.NoError(t, c.Set(ctx, stats))

		got, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("cached value carries a TTL", func(t *testing.T) {
		c, mr := setupCache(t)

		require.NoError(t, c.Set(ctx, &domain.DashboardStats{TotalProjects: 1}))
		assert.Positive(t, mr.TTL(dashboardKey))

		mr.FastForward(dashboardTTL + 1)
		_, err := c.Get(ctx)
		require.ErrorIs(t, err, ErrMiss)
	})

	t.Run("invalidate drops the cached value", func(t *testing.T) {
		c, _ := setupCache(t)

		require.NoError(t, c.Set(ctx, &domain.DashboardStats{TotalProjects: 1}))
		require.NoError(t, c.Invalidate(ctx))

		_, err := c.Get(ctx)
		require.ErrorIs(t, err, ErrMiss)
	})
}
