package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"vedo/internal/creator/models"
	"vedo/internal/creator/service"
	"vedo/internal/creator/store"
	"vedo/internal/idgen"
	id "vedo/pkg/domain"
)

type HandlerSuite struct {
	suite.Suite
	svc    *service.Service
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	gen, err := idgen.New("VEDO")
	s.Require().NoError(err)

	s.svc = service.New(store.NewInMemory(), gen)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.svc, logger).Register(s.router)
}

func (s *HandlerSuite) registerBody(email string) string {
	return `{
		"personalInfo": {
			"firstName": "Sarah", "lastName": "Johnson", "email": "` + email + `",
			"phone": "+23276123456", "nationalId": "SL-1988-004455",
			"dateOfBirth": "1988-09-30", "address": "7 Wilkinson Road, Freetown"
		},
		"creatorInfo": {
			"displayName": "TechSarah",
			"contentType": "technology",
			"website": "https://techsarah.example.com",
			"socialMedia": {"youtube": "https://youtube.com/@techsarah"}
		},
		"verification": {
			"termsAgreed": true,
			"ipPolicyAgreed": true,
			"documents": [{"type": "national_id", "url": "https://files.example.com/doc.pdf"}]
		}
	}`
}

func (s *HandlerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestRegisterSuccess() {
	rec := s.do(http.MethodPost, "/register", s.registerBody("sarah@example.com"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp RegisterResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.NotEmpty(resp.ApplicationID)
	s.Equal(models.StatusPending, resp.Status)
	s.False(resp.SubmittedAt.IsZero())
}

func (s *HandlerSuite) TestRegisterMalformedJSON() {
	rec := s.do(http.MethodPost, "/register", `{"personalInfo": `)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestRegisterValidationFailure() {
	body := strings.Replace(s.registerBody("sarah@example.com"), `"termsAgreed": true`, `"termsAgreed": false`, 1)
	rec := s.do(http.MethodPost, "/register", body)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "terms of service")
}

func (s *HandlerSuite) TestRegisterDuplicateEmail() {
	rec := s.do(http.MethodPost, "/register", s.registerBody("sarah@example.com"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/register", s.registerBody("sarah@example.com"))
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "email is already registered")
}

func (s *HandlerSuite) TestVerifyFoundAndMiss() {
	rec := s.do(http.MethodPost, "/register", s.registerBody("sarah@example.com"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created RegisterResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	creatorID, err := id.ParseCreatorID(created.ApplicationID)
	s.Require().NoError(err)

	approved, err := s.svc.Approve(context.Background(), creatorID, id.NewUserID(), models.LevelGold)
	s.Require().NoError(err)

	rec = s.do(http.MethodGet, "/verify?q="+strings.ToLower(approved.RegistryID.String()), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp VerifyResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Found)
	s.Require().NotNil(resp.Creator)
	s.Equal(approved.RegistryID, resp.Creator.RegistryID)
	s.Equal("TechSarah", resp.Creator.DisplayName)

	// Personal contact details stay private.
	s.NotContains(rec.Body.String(), "sarah@example.com")

	rec = s.do(http.MethodGet, "/verify?q=nobody", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	resp = VerifyResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.False(resp.Found)
	s.Nil(resp.Creator)
}

func (s *HandlerSuite) TestVerifyRequiresQuery() {
	rec := s.do(http.MethodGet, "/verify", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}
