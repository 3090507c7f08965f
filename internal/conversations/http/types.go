package http

import "github.com/sdr-assist/sdr-backend/internal/conversations/repository"

// Handler bundles the dependencies for conversation HTTP endpoints.
type Handler struct {
	repo *repository.ConversationRepository
}

func New(repo *repository.ConversationRepository) *Handler {
	return &Handler{repo: repo}
}

type createReq struct {
	ProjectID   int64   `json:"projectId"`
	LeadName    string  `json:"leadName"`
	LeadCompany string  `json:"leadCompany"`
	LeadSource  *string `json:"leadSource"`
	LeadNotes   *string `json:"leadNotes"`
}

type updateReq struct {
	LeadName    *string `json:"leadName"`
	LeadCompany *string `json:"leadCompany"`
	LeadSource  *string `json:"leadSource"`
	LeadNotes   *string `json:"leadNotes"`
	Status      *string `json:"status"`
}

type addMessageReq struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
