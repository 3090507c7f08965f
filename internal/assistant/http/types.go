package http

import "github.com/sdr-assist/sdr-backend/internal/assistant"

// Handler exposes the mock generator over HTTP.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

type generateReq struct {
	Messages []assistant.ChatMessage   `json:"messages"`
	Context  *assistant.ProjectContext `json:"context"`
}

type suggestReq struct {
	ConversationHistory []assistant.ChatMessage   `json:"conversationHistory"`
	Context             *assistant.ProjectContext `json:"context"`
}
