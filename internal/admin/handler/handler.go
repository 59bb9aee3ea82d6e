// Package handler exposes the admin review surface: the application queue,
// decision endpoints, dashboard stats, and the activity feed.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vedo/internal/admin/service"
	"vedo/internal/audit"
	"vedo/internal/creator/models"
	"vedo/internal/creator/store"
	"vedo/internal/platform/middleware"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
	"vedo/pkg/platform/httputil"
)

// Dashboard provides the read side of the admin surface.
type Dashboard interface {
	Overview(ctx context.Context) (*service.Overview, error)
	PendingApplications(ctx context.Context) ([]*models.Application, error)
	Stats(ctx context.Context) (*store.Stats, error)
	RecentActivity(ctx context.Context, limit int) ([]*audit.Entry, error)
	ApplicationActivity(ctx context.Context, creatorID id.CreatorID) ([]*audit.Entry, error)
}

// Reviewer provides the decision side, acting on individual applications.
type Reviewer interface {
	Get(ctx context.Context, creatorID id.CreatorID) (*models.Application, error)
	StartReview(ctx context.Context, creatorID id.CreatorID, reviewerID id.UserID) (*models.Application, error)
	Approve(ctx context.Context, creatorID id.CreatorID, reviewerID id.UserID, level models.VerificationLevel) (*models.Application, error)
	Reject(ctx context.Context, creatorID id.CreatorID, reviewerID id.UserID, reason string) (*models.Application, error)
}

type Handler struct {
	dashboard Dashboard
	reviewer  Reviewer
	logger    *slog.Logger
}

func New(dashboard Dashboard, reviewer Reviewer, logger *slog.Logger) *Handler {
	return &Handler{dashboard: dashboard, reviewer: reviewer, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/dashboard", h.HandleDashboard)
	r.Get("/admin/applications", h.HandleListApplications)
	r.Get("/admin/applications/{id}", h.HandleGetApplication)
	r.Get("/admin/applications/{id}/activity", h.HandleApplicationActivity)
	r.Post("/admin/applications/{id}/review", h.HandleStartReview)
	r.Post("/admin/applications/{id}/approve", h.HandleApprove)
	r.Post("/admin/applications/{id}/reject", h.HandleReject)
	r.Get("/admin/stats", h.HandleStats)
	r.Get("/admin/activity", h.HandleActivity)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.dashboard.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard failed", "error", err, "request_id", middleware.GetRequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOverviewResponse(overview))
}

func (h *Handler) HandleApplicationActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creatorID, ok := h.creatorIDFromPath(w, r)
	if !ok {
		return
	}

	entries, err := h.dashboard.ApplicationActivity(ctx, creatorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "application activity failed", "error", err, "request_id", middleware.GetRequestID(ctx), "application_id", creatorID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toActivityList(entries))
}

func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.dashboard.PendingApplications(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list applications failed", "error", err, "request_id", middleware.GetRequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationList(apps))
}

func (h *Handler) HandleGetApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creatorID, ok := h.creatorIDFromPath(w, r)
	if !ok {
		return
	}

	app, err := h.reviewer.Get(ctx, creatorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) HandleStartReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	creatorID, ok := h.creatorIDFromPath(w, r)
	if !ok {
		return
	}

	app, err := h.reviewer.StartReview(ctx, creatorID, h.reviewerID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "start review failed", "error", err, "request_id", middleware.GetRequestID(ctx), "application_id", creatorID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	creatorID, ok := h.creatorIDFromPath(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[ApproveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	level, err := models.ParseLevel(req.VerificationLevel)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.reviewer.Approve(ctx, creatorID, h.reviewerID(ctx), level)
	if err != nil {
		h.logger.ErrorContext(ctx, "approve failed", "error", err, "request_id", requestID, "application_id", creatorID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	creatorID, ok := h.creatorIDFromPath(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	app, err := h.reviewer.Reject(ctx, creatorID, h.reviewerID(ctx), req.Reason)
	if err != nil {
		h.logger.ErrorContext(ctx, "reject failed", "error", err, "request_id", requestID, "application_id", creatorID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "stats failed", "error", err, "request_id", middleware.GetRequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.dashboard.RecentActivity(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "activity failed", "error", err, "request_id", middleware.GetRequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toActivityList(entries))
}

func (h *Handler) creatorIDFromPath(w http.ResponseWriter, r *http.Request) (id.CreatorID, bool) {
	creatorID, err := id.ParseCreatorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return id.CreatorID{}, false
	}
	return creatorID, true
}

// reviewerID extracts the acting admin from the authenticated context. An
// unparsable ID is recorded as the zero actor rather than failing the
// decision.
func (h *Handler) reviewerID(ctx context.Context) id.UserID {
	userID, err := id.ParseUserID(middleware.GetUserID(ctx))
	if err != nil {
		return id.UserID{}
	}
	return userID
}
