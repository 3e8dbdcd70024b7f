package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/handlers"
	custommiddleware "github.com/artilectsolutions/budgetsplit-backend/internal/api/middleware"
	"github.com/artilectsolutions/budgetsplit-backend/internal/config"
	"github.com/artilectsolutions/budgetsplit-backend/internal/ratelimit"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
)

// Services bundles everything the router dispatches to.
type Services struct {
	System *service.SystemService
	Auth   *service.AuthService
	Jobs   *service.JobService
	Share  *service.ShareService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, limiter ratelimit.Store, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	if cfg.Server.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(services.System)
	authHandler := handlers.NewAuthHandler(services.Auth)
	jobHandler := handlers.NewJobHandler(services.Jobs, services.Share)
	distributionHandler := handlers.NewDistributionHandler(services.Jobs)
	shareHandler := handlers.NewShareHandler(services.Share)

	requireAuth := custommiddleware.Authenticate(services.Auth)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/signin", authHandler.SignIn)

				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Get("/me", authHandler.Me)
					r.Post("/verify-token", authHandler.VerifyToken)
					r.Post("/logout", authHandler.Logout)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", jobHandler.ListJobs)
				r.Post("/", jobHandler.CreateJob)
				r.Get("/stats", jobHandler.Stats)
				r.Get("/names/suggestions", jobHandler.NameSuggestions)
				r.Get("/export", jobHandler.Export)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", jobHandler.GetJob)
					r.Put("/", jobHandler.UpdateJob)
					r.Delete("/", jobHandler.DeleteJob)
					r.Get("/breakdown", jobHandler.Breakdown)
					r.Post("/share", jobHandler.Share)
				})
			})

			r.Route("/distribution", func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/preview", distributionHandler.Preview)
			})

			r.Get("/share/{token}", shareHandler.Resolve)
		})
	})

	return r
}
