package http

import "github.com/gin-gonic/gin"

// Register attaches the read-only analytics routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/projects", h.projectSummaries)
	rg.GET("/conversations", h.conversationDetails)
	rg.GET("/recent-activity", h.recentActivity)
}
