// Package httptransport assembles the portal's HTTP surface: public
// registration and lookup, authentication, and the role-guarded admin review
// API.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "vedo/internal/admin/handler"
	authhandler "vedo/internal/auth/handler"
	authmodels "vedo/internal/auth/models"
	creatorhandler "vedo/internal/creator/handler"
	"vedo/internal/platform/health"
	"vedo/internal/platform/middleware"
)

// Deps collects the wired handlers and cross-cutting services the router
// mounts.
type Deps struct {
	Creator     *creatorhandler.Handler
	Auth        *authhandler.Handler
	Admin       *adminhandler.Handler
	Health      *health.Handler
	Verifier    middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
}

// NewRouter wires all endpoints with the standard middleware stack. Admin
// routes additionally require an authenticated admin or moderator.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	deps.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public portal surface, rate limited per client IP.
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Handler)
		}
		deps.Creator.Register(r)
		deps.Auth.Register(r)
	})

	// Any authenticated caller.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Verifier, deps.Logger))
		deps.Auth.RegisterProtected(r)
	})

	// Review surface for admins and moderators.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Verifier, deps.Logger))
		r.Use(middleware.RequireRole(deps.Logger,
			string(authmodels.RoleAdmin), string(authmodels.RoleModerator)))
		deps.Admin.Register(r)
	})

	return r
}
