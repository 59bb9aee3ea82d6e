package models

import (
	"time"

	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// Application is a creator's registration awaiting, or past, a verification
// decision. Status and registry ID are mutated only through the transition
// methods below; no other code path may write them.
type Application struct {
	ID         id.CreatorID  `json:"id"`
	RegistryID id.RegistryID `json:"registry_id,omitempty"` // set if and only if verified

	Personal PersonalInfo   `json:"personal"`
	Profile  CreatorProfile `json:"profile"`

	TermsAgreed    bool `json:"terms_agreed"`
	IPPolicyAgreed bool `json:"ip_policy_agreed"`

	Documents []Document `json:"documents,omitempty"`

	Status          Status            `json:"status"`
	Level           VerificationLevel `json:"verification_level,omitempty"` // set at approval
	RejectionReason string            `json:"rejection_reason,omitempty"`
	VerifiedAt      *time.Time        `json:"verified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewApplication creates a pending application. Both consent flags must be
// true: a record that could never legally leave pending is not created at all.
func NewApplication(creatorID id.CreatorID, personal PersonalInfo, profile CreatorProfile, termsAgreed, ipPolicyAgreed bool, now time.Time) (*Application, error) {
	if !termsAgreed || !ipPolicyAgreed {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "both consent agreements are required")
	}
	return &Application{
		ID:             creatorID,
		Personal:       personal,
		Profile:        profile,
		TermsAgreed:    termsAgreed,
		IPPolicyAgreed: ipPolicyAgreed,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// StartReview moves a pending application into manual review.
func (a *Application) StartReview(now time.Time) error {
	if a.Status != StatusPending {
		return dErrors.New(dErrors.CodeInvalidState, "only pending applications can move to review")
	}
	a.Status = StatusUnderReview
	a.UpdatedAt = now
	return nil
}

// Approve transitions the application to verified, assigning the registry ID,
// level, and verification date together so the record is never half-approved.
func (a *Application) Approve(registryID id.RegistryID, level VerificationLevel, now time.Time) error {
	if a.Status.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidState, "application already "+string(a.Status))
	}
	if registryID.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "registry ID is required for approval")
	}
	if level == "" {
		level = LevelBronze
	}
	a.Status = StatusVerified
	a.RegistryID = registryID
	a.Level = level
	a.VerifiedAt = &now
	a.UpdatedAt = now
	return nil
}

// Reject transitions the application to rejected. No registry ID is assigned;
// the record is retained for audit.
func (a *Application) Reject(reason string, now time.Time) error {
	if a.Status.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidState, "application already "+string(a.Status))
	}
	if reason == "" {
		return dErrors.New(dErrors.CodeValidation, "rejection reason is required")
	}
	a.Status = StatusRejected
	a.RejectionReason = reason
	a.UpdatedAt = now
	return nil
}

// Clone returns a deep copy so stores never hand out shared mutable state.
func (a *Application) Clone() *Application {
	cp := *a
	if a.VerifiedAt != nil {
		t := *a.VerifiedAt
		cp.VerifiedAt = &t
	}
	if a.Documents != nil {
		cp.Documents = make([]Document, len(a.Documents))
		copy(cp.Documents, a.Documents)
	}
	return &cp
}

// IsVerified reports whether the application holds a public registry ID.
func (a *Application) IsVerified() bool {
	return a.Status == StatusVerified
}

// FullName is the applicant's legal name, used in audit descriptions.
func (a *Application) FullName() string {
	return a.Personal.FirstName + " " + a.Personal.LastName
}
