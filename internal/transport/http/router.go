package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-trip-booking/internal/application/auth"
	"github.com/go-trip-booking/internal/application/profile"
	"github.com/go-trip-booking/internal/application/trip"
	"github.com/go-trip-booking/internal/config"
	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/transport/http/handler"
	appmiddleware "github.com/go-trip-booking/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		SessionRepo: deps.SessionRepo,
		Signer:      deps.Signer,
		Bus:         deps.Bus,
		SessionTTL:  cfg.SessionTTL,
	})
	tripSvc := trip.NewService(trip.ServiceDeps{
		TripRepo:   deps.TripRepo,
		ImageStore: deps.ImageStore,
		Bus:        deps.Bus,
	})
	profileSvc := profile.NewService(profile.ServiceDeps{
		UserRepo: deps.UserRepo,
		Bus:      deps.Bus,
	})

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(authSvc)
	userH := handler.NewUserHandler(authSvc)
	tripH := handler.NewTripHandler(tripSvc)
	profileH := handler.NewProfileHandler(profileSvc)

	authMw := appmiddleware.Auth(authSvc)

	// 5 requests/second, burst of 10 — applied to credential endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Check)
		r.With(sensitiveRL.Limit).Post("/auth/register", userH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", sessionH.Login)

		// Catalogue browsing is open.
		r.Get("/trips", tripH.List)
		r.Get("/trips/popular", tripH.Popular)
		r.Get("/trips/{id}", tripH.Get)
		r.Get("/trips/{id}/image", tripH.ImageURL)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/logout", sessionH.Logout)
			r.Get("/auth/me", sessionH.Me)

			r.Get("/profile", profileH.Get)
			r.Put("/profile", profileH.Update)
			r.Put("/profile/address", profileH.UpdateAddress)
			r.Put("/profile/phone", profileH.UpdatePhone)
			r.Put("/profile/preferences", profileH.UpdatePreferences)
			r.Post("/profile/password", profileH.ChangePassword)

			r.Post("/trips", tripH.Create)
			r.Put("/trips/{id}", tripH.Update)
			r.Post("/trips/{id}/book", tripH.Book)
			r.Delete("/trips/{id}/book", tripH.CancelBooking)
			r.Post("/trips/{id}/image", tripH.UploadImage)

			r.Delete("/users/{id}", userH.Deactivate)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/trips/{id}/publish", tripH.Publish)
				r.Post("/trips/{id}/cancel", tripH.Cancel)
				r.Post("/trips/{id}/complete", tripH.Complete)
				r.Delete("/trips/{id}", tripH.Delete)
				r.Post("/users/{id}/activate", userH.Activate)
			})
		})
	})

	return r
}
