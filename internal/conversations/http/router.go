package http

import "github.com/gin-gonic/gin"

// Register attaches conversation routes, including the nested message log.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)

	rg.POST("/:id/messages", h.addMessage)
	rg.GET("/:id/messages", h.listMessages)
}
