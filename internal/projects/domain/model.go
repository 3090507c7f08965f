package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("project not found")
	ErrValidation = errors.New("invalid project input")
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Project is the sales campaign definition handed to reps. It is
// storage-agnostic and shared across repository and HTTP layers.
type Project struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ProductDetails string    `json:"productDetails"`
	TargetAudience string    `json:"targetAudience"`
	ValueArguments string    `json:"valueArguments"`
	ApproachGuide  string    `json:"approachGuide"`
	Objections     []string  `json:"objections"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
