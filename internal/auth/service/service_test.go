package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vedo/internal/auth/models"
	"vedo/internal/auth/store"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx  context.Context
	svc  *Service
	user *models.User
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	users := store.NewInMemory()

	user, err := models.NewUser(id.NewUserID(), "admin@vedo.gov.sl", "System Admin", "admin123", models.RoleAdmin, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(users.Create(s.ctx, user))
	s.user = user

	s.svc = New(users, NewTokenService("test-signing-key", time.Hour))
}

func (s *AuthServiceSuite) TestLoginIssuesVerifiableToken() {
	user, token, err := s.svc.Login(s.ctx, "Admin@VEDO.gov.sl", "admin123")
	s.Require().NoError(err)
	s.Equal(s.user.ID, user.ID)
	s.Require().NotEmpty(token)

	claims, err := s.svc.Verifier().VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal("admin@vedo.gov.sl", claims.Email)
	s.Equal("admin", claims.Role)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, _, err := s.svc.Login(s.ctx, "admin@vedo.gov.sl", "wrong")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AuthServiceSuite) TestLoginUnknownEmailSameError() {
	_, _, wrongPass := s.svc.Login(s.ctx, "admin@vedo.gov.sl", "wrong")
	_, _, unknown := s.svc.Login(s.ctx, "nobody@vedo.gov.sl", "admin123")
	s.Require().Error(wrongPass)
	s.Require().Error(unknown)
	s.Equal(wrongPass.Error(), unknown.Error())
}

func (s *AuthServiceSuite) TestLoginRequiresCredentials() {
	_, _, err := s.svc.Login(s.ctx, "", "admin123")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, _, err = s.svc.Login(s.ctx, "admin@vedo.gov.sl", "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *AuthServiceSuite) TestVerifyRejectsExpiredToken() {
	expired := NewTokenService("test-signing-key", -time.Minute)
	token, err := expired.IssueToken(s.user, time.Now())
	s.Require().NoError(err)

	_, err = expired.VerifyToken(token)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.Contains(err.Error(), "expired")
}

func (s *AuthServiceSuite) TestVerifyRejectsForeignSignature() {
	other := NewTokenService("another-key", time.Hour)
	token, err := other.IssueToken(s.user, time.Now())
	s.Require().NoError(err)

	_, err = s.svc.Verifier().VerifyToken(token)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AuthServiceSuite) TestMe() {
	user, err := s.svc.Me(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Equal("System Admin", user.Name)

	_, err = s.svc.Me(s.ctx, id.NewUserID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
