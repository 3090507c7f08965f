package http

import "github.com/gin-gonic/gin"

// Register attaches the assistant routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/suggest", h.suggest)
}
