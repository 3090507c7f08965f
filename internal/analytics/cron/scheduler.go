package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sdr-assist/sdr-backend/internal/analytics/cache"
	"github.com/sdr-assist/sdr-backend/internal/analytics/repository"
)

// Scheduler refreshes the conversation_analytics rollup and re-warms the
// dashboard cache on a fixed interval.
type Scheduler struct {
	repo  *repository.AnalyticsRepository
	cache *cache.DashboardCache
	cron  *cron.Cron
}

func NewScheduler(repo *repository.AnalyticsRepository, dashboardCache *cache.DashboardCache) *Scheduler {
	return &Scheduler{
		repo:  repo,
		cache: dashboardCache,
		cron:  cron.New(),
	}
}

// Start registers the refresh job (every 5 minutes) and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	log.Println("analytics scheduler started (rollup refresh every 5 minutes)")
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce performs a single refresh + cache warm cycle.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.repo.RefreshRollups(ctx); err != nil {
		log.Printf("rollup refresh failed: %v", err)
		return
	}

	if s.cache != nil {
		stats, err := s.repo.Dashboard(ctx)
		if err != nil {
			log.Printf("dashboard warm query failed: %v", err)
			return
		}
		if err := s.cache.Set(ctx, stats); err != nil {
			log.Printf("dashboard cache warm failed: %v", err)
			return
		}
	}

	log.Printf("rollup refresh completed in %s", time.Since(start))
}
