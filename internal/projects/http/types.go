package http

import "github.com/sdr-assist/sdr-backend/internal/projects/repository"

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	repo *repository.ProjectRepository
}

func New(repo *repository.ProjectRepository) *Handler {
	return &Handler{repo: repo}
}

type createReq struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ProductDetails string   `json:"productDetails"`
	TargetAudience string   `json:"targetAudience"`
	ValueArguments string   `json:"valueArguments"`
	ApproachGuide  string   `json:"approachGuide"`
	Objections     []string `json:"objections"`
}

type updateReq struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	ProductDetails *string  `json:"productDetails"`
	TargetAudience *string  `json:"targetAudience"`
	ValueArguments *string  `json:"valueArguments"`
	ApproachGuide  *string  `json:"approachGuide"`
	Status         *string  `json:"status"`
	Objections     []string `json:"objections"`
}
