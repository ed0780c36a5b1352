package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
)

type Handlers struct {
	Auth         *AuthHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Health       *HealthHandler
	Guard        *Guard

	// GoogleLogin mounts POST /auth/google when set.
	GoogleLogin bool
}

func NewHandler(h Handlers, corsOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))
	r.Use(RouteSpanName)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			if h.GoogleLogin {
				r.Post("/google", h.Auth.GoogleLogin)
			}
			r.Post("/refresh", h.Auth.Refresh)
			r.With(h.Guard.OptionalAuth).Post("/logout", h.Auth.Logout)
			r.With(h.Guard.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.Jobs.ListJobs)

			r.Group(func(r chi.Router) {
				r.Use(h.Guard.RequireAuth)

				r.With(RequireRole(domain.RoleStudent)).Post("/apply", h.Applications.Apply)

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(domain.RoleEmployer))
					r.Post("/", h.Jobs.CreateJob)
					r.Put("/{id}", h.Jobs.UpdateJob)
					r.Delete("/{id}", h.Jobs.DeleteJob)
					r.Get("/{id}/applicants", h.Applications.ListApplicants)
				})
			})

			r.Get("/{id}", h.Jobs.GetJob)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(h.Guard.RequireAuth)

			r.With(RequireRole(domain.RoleStudent)).Get("/my", h.Applications.ListMine)
			r.With(RequireRole(domain.RoleStudent)).Delete("/{id}", h.Applications.Withdraw)
			r.With(RequireRole(domain.RoleEmployer)).Get("/employer", h.Applications.ListForEmployer)
			r.With(RequireRole(domain.RoleEmployer)).Put("/{id}/status", h.Applications.UpdateStatus)
		})
	})

	// The server span is the parent of every service span and continues the
	// caller's trace when a traceparent header is sent.
	return otelhttp.NewHandler(r, "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	)
}
