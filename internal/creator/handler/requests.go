package handler

import (
	"vedo/internal/creator/models"
	"vedo/internal/creator/service"
)

// HTTP Request DTOs - contain JSON tags for API serialization.
// These are converted to service commands before processing; normalization
// and field validation happen on the command.

type RegisterRequest struct {
	PersonalInfo PersonalInfoRequest `json:"personalInfo"`
	CreatorInfo  CreatorInfoRequest  `json:"creatorInfo"`
	Verification VerificationRequest `json:"verification"`
}

type PersonalInfoRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	NationalID  string `json:"nationalId"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
}

type CreatorInfoRequest struct {
	DisplayName     string             `json:"displayName"`
	Bio             string             `json:"bio"`
	ContentType     string             `json:"contentType"`
	PrimaryPlatform string             `json:"primaryPlatform"`
	Website         string             `json:"website"`
	SocialMedia     SocialMediaRequest `json:"socialMedia"`
}

type SocialMediaRequest struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	YouTube   string `json:"youtube"`
	TikTok    string `json:"tiktok"`
}

type VerificationRequest struct {
	TermsAgreed    bool              `json:"termsAgreed"`
	IPPolicyAgreed bool              `json:"ipPolicyAgreed"`
	Documents      []DocumentRequest `json:"documents"`
}

type DocumentRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (r *RegisterRequest) toCommand() *service.SubmitCommand {
	cmd := &service.SubmitCommand{
		FirstName:   r.PersonalInfo.FirstName,
		LastName:    r.PersonalInfo.LastName,
		Email:       r.PersonalInfo.Email,
		Phone:       r.PersonalInfo.Phone,
		NationalID:  r.PersonalInfo.NationalID,
		DateOfBirth: r.PersonalInfo.DateOfBirth,
		Address:     r.PersonalInfo.Address,

		DisplayName:     r.CreatorInfo.DisplayName,
		Bio:             r.CreatorInfo.Bio,
		ContentType:     r.CreatorInfo.ContentType,
		PrimaryPlatform: r.CreatorInfo.PrimaryPlatform,
		WebsiteURL:      r.CreatorInfo.Website,
		Social: models.SocialLinks{
			Facebook:  r.CreatorInfo.SocialMedia.Facebook,
			Twitter:   r.CreatorInfo.SocialMedia.Twitter,
			Instagram: r.CreatorInfo.SocialMedia.Instagram,
			YouTube:   r.CreatorInfo.SocialMedia.YouTube,
			TikTok:    r.CreatorInfo.SocialMedia.TikTok,
		},

		TermsAgreed:    r.Verification.TermsAgreed,
		IPPolicyAgreed: r.Verification.IPPolicyAgreed,
	}
	for _, doc := range r.Verification.Documents {
		cmd.Documents = append(cmd.Documents, service.DocumentInput{Type: doc.Type, URL: doc.URL})
	}
	return cmd
}
