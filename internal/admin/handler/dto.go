package handler

import (
	"time"

	"vedo/internal/admin/service"
	"vedo/internal/audit"
	"vedo/internal/creator/models"
	"vedo/internal/creator/store"
	dErrors "vedo/pkg/domain-errors"
	strutil "vedo/pkg/string"
)

type ApproveRequest struct {
	VerificationLevel string `json:"verification_level"`
}

func (r *ApproveRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.VerificationLevel)
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.Reason)
}

func (r *RejectRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "rejection reason is required")
	}
	return nil
}

// ApplicationResponse is the admin view of an application: the full record,
// unlike the public lookup projection.
type ApplicationResponse struct {
	ID              string                   `json:"id"`
	RegistryID      string                   `json:"registry_id,omitempty"`
	Personal        models.PersonalInfo      `json:"personal"`
	Profile         models.CreatorProfile    `json:"profile"`
	Documents       []models.Document        `json:"documents,omitempty"`
	Status          models.Status            `json:"status"`
	Level           models.VerificationLevel `json:"verification_level,omitempty"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	VerifiedAt      *time.Time               `json:"verified_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
	Total        int                    `json:"total"`
}

func toApplicationResponse(app *models.Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:              app.ID.String(),
		RegistryID:      app.RegistryID.String(),
		Personal:        app.Personal,
		Profile:         app.Profile,
		Documents:       app.Documents,
		Status:          app.Status,
		Level:           app.Level,
		RejectionReason: app.RejectionReason,
		VerifiedAt:      app.VerifiedAt,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

func toApplicationList(apps []*models.Application) *ApplicationListResponse {
	out := &ApplicationListResponse{Applications: make([]*ApplicationResponse, 0, len(apps))}
	for _, app := range apps {
		out.Applications = append(out.Applications, toApplicationResponse(app))
	}
	out.Total = len(out.Applications)
	return out
}

type ActivityEntry struct {
	ID          string            `json:"id"`
	Action      audit.Action      `json:"action"`
	Description string            `json:"description"`
	CreatorID   string            `json:"creator_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ActivityResponse struct {
	Activity []*ActivityEntry `json:"activity"`
}

func toActivityList(entries []*audit.Entry) *ActivityResponse {
	out := &ActivityResponse{Activity: make([]*ActivityEntry, 0, len(entries))}
	for _, e := range entries {
		out.Activity = append(out.Activity, &ActivityEntry{
			ID:          e.ID.String(),
			Action:      e.Action,
			Description: e.Description,
			CreatorID:   e.CreatorID.String(),
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

type OverviewResponse struct {
	Stats        *store.Stats           `json:"stats"`
	Applications []*ApplicationResponse `json:"applications"`
	Activity     []*ActivityEntry       `json:"activity"`
}

func toOverviewResponse(ov *service.Overview) *OverviewResponse {
	return &OverviewResponse{
		Stats:        ov.Stats,
		Applications: toApplicationList(ov.Applications).Applications,
		Activity:     toActivityList(ov.Activity).Activity,
	}
}
