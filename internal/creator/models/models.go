package models

import (
	"time"

	dErrors "vedo/pkg/domain-errors"
)

// Status is the verification workflow state of an application.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusVerified    Status = "verified"
	StatusRejected    Status = "rejected"
)

// IsTerminal reports whether no further transition is allowed. Re-application
// after rejection creates a new record rather than reopening this one.
func (s Status) IsTerminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// VerificationLevel is the vetting tier granted at approval time.
type VerificationLevel string

const (
	LevelBronze VerificationLevel = "bronze"
	LevelSilver VerificationLevel = "silver"
	LevelGold   VerificationLevel = "gold"
)

// ParseLevel validates a caller-supplied level, defaulting to bronze when empty.
func ParseLevel(s string) (VerificationLevel, error) {
	switch VerificationLevel(s) {
	case "":
		return LevelBronze, nil
	case LevelBronze, LevelSilver, LevelGold:
		return VerificationLevel(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "verification level must be one of [bronze silver gold]")
	}
}

// PersonalInfo holds the applicant's identity fields.
type PersonalInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	NationalID  string `json:"national_id"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

// SocialLinks holds per-platform profile URLs. All optional.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// CreatorProfile holds the public-facing creator fields.
type CreatorProfile struct {
	DisplayName     string      `json:"display_name"`
	Bio             string      `json:"bio"`
	ContentType     string      `json:"content_type"`
	PrimaryPlatform string      `json:"primary_platform"`
	WebsiteURL      string      `json:"website_url"`
	Social          SocialLinks `json:"social"`
}

// DocumentStatus tracks review of a supporting document. The core records
// document metadata as supplied; it never verifies documents itself.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentAccepted DocumentStatus = "accepted"
	DocumentRejected DocumentStatus = "rejected"
)

// Document is metadata for an uploaded supporting document.
type Document struct {
	Type       string         `json:"type"`
	Status     DocumentStatus `json:"status"`
	URL        string         `json:"url,omitempty"`
	UploadedAt time.Time      `json:"uploaded_at"`
}
