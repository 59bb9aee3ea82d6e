// Package handler exposes the public portal endpoints: registration intake
// and verified-creator lookup.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vedo/internal/creator/models"
	"vedo/internal/creator/service"
	"vedo/internal/platform/middleware"
	dErrors "vedo/pkg/domain-errors"
	"vedo/pkg/platform/httputil"
)

// Service defines the public-facing creator operations.
type Service interface {
	Submit(ctx context.Context, cmd *service.SubmitCommand) (*models.Application, error)
	Resolve(ctx context.Context, query string) (*service.PublicCreator, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Get("/verify", h.HandleVerify)
}

// HandleRegister accepts a new creator application.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app, err := h.service.Submit(ctx, req.toCommand())
	if err != nil {
		h.logger.ErrorContext(ctx, "registration failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &RegisterResponse{
		ApplicationID: app.ID.String(),
		Status:        app.Status,
		SubmittedAt:   app.CreatedAt,
	})
}

// HandleVerify answers a public lookup. A miss is a successful response with
// found=false, not an error.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "search query is required"))
		return
	}

	creator, err := h.service.Resolve(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "lookup failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &VerifyResponse{
		Found:   creator != nil,
		Creator: creator,
	})
}
