package service

import (
	"context"
	"errors"
	"strings"

	"vedo/internal/audit"
	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// maxRegistryIDAttempts bounds retries when a generated registry ID collides
// with an existing one.
const maxRegistryIDAttempts = 5

// Get returns a single application by ID.
func (s *Service) Get(ctx context.Context, creatorID id.CreatorID) (*models.Application, error) {
	if creatorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "creator ID required")
	}
	app, err := s.store.FindByID(ctx, creatorID)
	if err != nil {
		return nil, wrapApplicationErr(err, "failed to load application")
	}
	return app, nil
}

// StartReview moves a pending application into manual review.
func (s *Service) StartReview(ctx context.Context, creatorID id.CreatorID, reviewerID id.UserID) (*models.Application, error) {
	if creatorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "creator ID required")
	}

	var reviewed *models.Application
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		app, err := s.store.FindByID(ctx, creatorID)
		if err != nil {
			return wrapApplicationErr(err, "failed to load application")
		}
		expected := app.Status
		if err := app.StartReview(now()); err != nil {
			return err
		}
		if err := s.store.Update(ctx, app, expected); err != nil {
			return wrapDecisionErr(err)
		}
		reviewed = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.ActionReview,
		"Application moved to review: "+reviewed.FullName(),
		reviewerID, reviewed.ID, nil)

	return reviewed, nil
}

// Approve verifies an application, assigning a fresh registry ID. Candidate
// IDs are random, so a collision with an already-assigned ID is possible;
// the store's uniqueness guarantee rejects it and we retry with a new
// candidate a bounded number of times.
func (s *Service) Approve(ctx context.Context, creatorID id.CreatorID, reviewerID id.UserID, level models.VerificationLevel) (*models.Application, error) {
	if creatorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "creator ID required")
	}

	var approved *models.Application
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		loaded, err := s.store.FindByID(ctx, creatorID)
		if err != nil {
			return wrapApplicationErr(err, "failed to load application")
		}
		expected := loaded.Status

		for attempt := 0; attempt < maxRegistryIDAttempts; attempt++ {
			app := loaded.Clone()
			if err := app.Approve(s.idgen.Next(now()), level, now()); err != nil {
				return err
			}
			err := s.store.Update(ctx, app, expected)
			if err == nil {
				approved = app
				return nil
			}
			if !errors.Is(err, sentinel.ErrAlreadyUsed) {
				return wrapDecisionErr(err)
			}
		}
		return dErrors.New(dErrors.CodeConflict, "could not assign a unique registry ID, please retry")
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.ActionApproval,
		"Creator approved: "+approved.FullName()+" ("+approved.RegistryID.String()+")",
		reviewerID, approved.ID,
		map[string]string{
			"verification_level": string(approved.Level),
			"registry_id":        approved.RegistryID.String(),
		})
	if s.metrics != nil {
		s.metrics.IncrementApproved()
	}

	return approved, nil
}

// Reject declines an application with a mandatory reason. The email becomes
// available for re-registration.
func (s *Service) Reject(ctx context.Context, creatorID id.CreatorID, reviewerID id.UserID, reason string) (*models.Application, error) {
	if creatorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "creator ID required")
	}
	reason = strings.TrimSpace(reason)

	var rejected *models.Application
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		app, err := s.store.FindByID(ctx, creatorID)
		if err != nil {
			return wrapApplicationErr(err, "failed to load application")
		}
		expected := app.Status
		if err := app.Reject(reason, now()); err != nil {
			return err
		}
		if err := s.store.Update(ctx, app, expected); err != nil {
			return wrapDecisionErr(err)
		}
		rejected = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.ActionRejection,
		"Application rejected: "+rejected.FullName(),
		reviewerID, rejected.ID,
		map[string]string{"rejection_reason": rejected.RejectionReason})
	if s.metrics != nil {
		s.metrics.IncrementRejected()
	}

	return rejected, nil
}

func wrapApplicationErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "application not found")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, action)
}

func wrapDecisionErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "application not found")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeInvalidState, "application was already decided by another reviewer")
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to update application")
	}
}
