package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdr-assist/sdr-backend/internal/analytics/cache"
	"github.com/sdr-assist/sdr-backend/internal/analytics/repository"
)

// Handler bundles the dependencies for analytics endpoints. The cache is
// optional; without it every dashboard load hits SQL.
type Handler struct {
	repo  *repository.AnalyticsRepository
	cache *cache.DashboardCache
}

func New(repo *repository.AnalyticsRepository, dashboardCache *cache.DashboardCache) *Handler {
	return &Handler{repo: repo, cache: dashboardCache}
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		stats, err := h.cache.Get(ctx)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "stats": stats})
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			// Cache trouble degrades to SQL, never to a request error.
			log.Printf("dashboard cache read failed: %v", err)
		}
	}

	stats, err := h.repo.Dashboard(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, stats); err != nil {
			log.Printf("dashboard cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": stats})
}

func (h *Handler) projectSummaries(c *gin.Context) {
	items, err := h.repo.ProjectSummaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) conversationDetails(c *gin.Context) {
	items, err := h.repo.ConversationDetails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "conversations": items})
}

func (h *Handler) recentActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid limit"})
			return
		}
		limit = n
	}

	items, err := h.repo.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "activities": items})
}
