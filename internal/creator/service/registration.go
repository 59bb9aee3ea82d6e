package service

import (
	"context"
	"errors"

	"vedo/internal/audit"
	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// Submit validates and persists a new application in pending status. A
// duplicate email among live applications is a validation failure: the
// applicant can correct it, unlike a server-side conflict.
func (s *Service) Submit(ctx context.Context, cmd *SubmitCommand) (*models.Application, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	app, err := models.NewApplication(
		id.NewCreatorID(),
		models.PersonalInfo{
			FirstName:   cmd.FirstName,
			LastName:    cmd.LastName,
			Email:       cmd.Email,
			Phone:       cmd.Phone,
			NationalID:  cmd.NationalID,
			DateOfBirth: cmd.DateOfBirth,
			Address:     cmd.Address,
		},
		models.CreatorProfile{
			DisplayName:     cmd.DisplayName,
			Bio:             cmd.Bio,
			ContentType:     cmd.ContentType,
			PrimaryPlatform: cmd.PrimaryPlatform,
			WebsiteURL:      cmd.WebsiteURL,
			Social:          cmd.Social,
		},
		cmd.TermsAgreed,
		cmd.IPPolicyAgreed,
		now(),
	)
	if err != nil {
		return nil, err
	}

	for _, doc := range cmd.Documents {
		app.Documents = append(app.Documents, models.Document{
			Type:       doc.Type,
			Status:     models.DocumentPending,
			URL:        doc.URL,
			UploadedAt: app.CreatedAt,
		})
	}

	if err := s.store.Create(ctx, app); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeValidation, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save application")
	}

	s.emitAudit(ctx, audit.ActionRegistration,
		"New creator registration: "+app.FullName(),
		id.UserID{}, app.ID,
		map[string]string{
			"content_type":     app.Profile.ContentType,
			"primary_platform": app.Profile.PrimaryPlatform,
		})
	if s.metrics != nil {
		s.metrics.IncrementSubmitted()
	}

	return app, nil
}
