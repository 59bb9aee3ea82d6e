package service

import (
	"strings"

	"vedo/internal/creator/models"
	dErrors "vedo/pkg/domain-errors"
	s "vedo/pkg/string"
	"vedo/pkg/validation"
)

// SubmitCommand contains validated input for a new creator application.
// Field format validation uses struct tags; cross-field rules (consent)
// live in Validate.
type SubmitCommand struct {
	FirstName   string `validate:"required,notblank,max=100"`
	LastName    string `validate:"required,notblank,max=100"`
	Email       string `validate:"required,email,max=254"`
	Phone       string `validate:"required,notblank,max=32"`
	NationalID  string `validate:"required,notblank,max=64"`
	DateOfBirth string `validate:"required,notblank,max=32"`
	Address     string `validate:"required,notblank,max=500"`

	DisplayName     string `validate:"required,notblank,max=100"`
	Bio             string `validate:"omitempty,max=2000"`
	ContentType     string `validate:"required,notblank,max=64"`
	PrimaryPlatform string `validate:"omitempty,max=64"`
	WebsiteURL      string `validate:"omitempty,url,max=500"`

	Social models.SocialLinks

	TermsAgreed    bool
	IPPolicyAgreed bool

	Documents []DocumentInput
}

// DocumentInput carries metadata for a supporting document. Contents are
// never inspected here.
type DocumentInput struct {
	Type string `validate:"required,notblank,max=64"`
	URL  string `validate:"omitempty,url,max=500"`
}

func (c *SubmitCommand) Normalize() {
	s.TrimStrings(
		&c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.NationalID, &c.DateOfBirth, &c.Address,
		&c.DisplayName, &c.Bio, &c.ContentType, &c.PrimaryPlatform, &c.WebsiteURL,
		&c.Social.Facebook, &c.Social.Twitter, &c.Social.Instagram,
		&c.Social.YouTube, &c.Social.TikTok,
	)
	c.Email = strings.ToLower(c.Email)
	for i := range c.Documents {
		s.TrimStrings(&c.Documents[i].Type, &c.Documents[i].URL)
	}
}

func (c *SubmitCommand) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	for i := range c.Documents {
		if err := validation.Validate(&c.Documents[i]); err != nil {
			return err
		}
	}
	if !c.TermsAgreed {
		return dErrors.New(dErrors.CodeValidation, "terms of service agreement is required")
	}
	if !c.IPPolicyAgreed {
		return dErrors.New(dErrors.CodeValidation, "intellectual property policy agreement is required")
	}
	return nil
}
