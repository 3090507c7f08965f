package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("conversation not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrValidation      = errors.New("invalid conversation input")
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Message types match the roles the assistant endpoints speak.
const (
	MessageTypeUser   = "user"
	MessageTypeAI     = "ai"
	MessageTypeSystem = "system"
)

// Conversation is one lead dialogue running against a project. Messages are
// joined in ascending creation order on reads.
type Conversation struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"projectId"`
	LeadName    string    `json:"leadName"`
	LeadCompany string    `json:"leadCompany"`
	LeadSource  *string   `json:"leadSource"`
	LeadNotes   *string   `json:"leadNotes"`
	Status      string    `json:"status"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Message is one append-only log entry; rows are never updated or deleted
// individually.
type Message struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClosed
}

func ValidMessageType(t string) bool {
	return t == MessageTypeUser || t == MessageTypeAI || t == MessageTypeSystem
}
