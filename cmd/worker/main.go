package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdr-assist/sdr-backend/config"
	analyticscache "github.com/sdr-assist/sdr-backend/internal/analytics/cache"
	cronjob "github.com/sdr-assist/sdr-backend/internal/analytics/cron"
	analyticsrepo "github.com/sdr-assist/sdr-backend/internal/analytics/repository"
	"github.com/sdr-assist/sdr-backend/internal/bootstrap"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <run|refresh>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	repo := analyticsrepo.New(db)
	var dashboardCache *analyticscache.DashboardCache
	if rdb != nil {
		dashboardCache = analyticscache.NewDashboardCache(rdb)
	}
	scheduler := cronjob.NewScheduler(repo, dashboardCache)

	switch os.Args[1] {
	case "refresh":
		scheduler.RunOnce(ctx)
	case "run":
		if err := scheduler.Start(); err != nil {
			log.Fatalf("scheduler: %v", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		scheduler.Stop()
		log.Println("worker stopped")
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
