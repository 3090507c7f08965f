package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/sdr-assist/sdr-backend/internal/api/http"
	"github.com/sdr-assist/sdr-backend/internal/api/http/middleware"
	"github.com/sdr-assist/sdr-backend/internal/telemetry"

	analyticscache "github.com/sdr-assist/sdr-backend/internal/analytics/cache"
	analyticshttp "github.com/sdr-assist/sdr-backend/internal/analytics/http"
	analyticsrepo "github.com/sdr-assist/sdr-backend/internal/analytics/repository"
	assistanthttp "github.com/sdr-assist/sdr-backend/internal/assistant/http"
	conversationshttp "github.com/sdr-assist/sdr-backend/internal/conversations/http"
	conversationsrepo "github.com/sdr-assist/sdr-backend/internal/conversations/repository"
	projectshttp "github.com/sdr-assist/sdr-backend/internal/projects/http"
	projectsrepo "github.com/sdr-assist/sdr-backend/internal/projects/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestIDMiddleware())

	metrics := telemetry.New(dep.ServiceName)
	r.Use(metrics.Middleware())
	metrics.RegisterRoutes(r)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projectRepo := projectsrepo.New(dep.DB)
	projectshttp.New(projectRepo).Register(api.Group("/projects"))

	conversationRepo := conversationsrepo.New(dep.DB)
	conversationshttp.New(conversationRepo).Register(api.Group("/conversations"))

	ai := api.Group("/ai")
	ai.Use(middleware.RateLimitMiddleware(rate.Limit(5), 10))
	assistanthttp.New().Register(ai)

	var dashboardCache *analyticscache.DashboardCache
	if dep.Redis != nil {
		dashboardCache = analyticscache.NewDashboardCache(dep.Redis)
	}
	analyticsRepo := analyticsrepo.New(dep.DB)
	analyticshttp.New(analyticsRepo, dashboardCache).Register(api.Group("/analytics"))

	return r
}
