package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sdr-assist/sdr-backend/internal/assistant"
)

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	for _, msg := range req.Messages {
		if !validRole(msg.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid message role"})
			return
		}
	}

	content := assistant.Generate(req.Messages, req.Context)
	c.JSON(http.StatusOK, gin.H{"ok": true, "content": content})
}

func (h *Handler) suggest(c *gin.Context) {
	var req suggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	suggestion := assistant.Suggest(req.ConversationHistory, req.Context)
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggestion": suggestion})
}

func validRole(role string) bool {
	return role == assistant.RoleUser || role == assistant.RoleAssistant || role == assistant.RoleSystem
}
