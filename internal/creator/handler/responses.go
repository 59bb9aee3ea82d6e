package handler

import (
	"time"

	"vedo/internal/creator/models"
	"vedo/internal/creator/service"
)

type RegisterResponse struct {
	ApplicationID string        `json:"application_id"`
	Status        models.Status `json:"status"`
	SubmittedAt   time.Time     `json:"submitted_at"`
}

type VerifyResponse struct {
	Found   bool                   `json:"found"`
	Creator *service.PublicCreator `json:"creator,omitempty"`
}
