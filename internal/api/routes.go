package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/parsical/internal/config"
	"github.com/zapponejosh/parsical/internal/metrics"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Everything under /api/v1 is rate limited per client address.
//
// Route structure:
//
//	GET    /health
//	GET    /metrics
//	GET    /api/v1/today
//	GET    /api/v1/now?tz=
//	GET    /api/v1/convert/gregorian/{date}    Gregorian YYYY-MM-DD to Persian
//	GET    /api/v1/convert/persian/{date}      Persian YYYY-MM-DD to Gregorian
//	GET    /api/v1/dates/between?from=&to=
//	GET    /api/v1/dates/range?from=&to=
//	GET    /api/v1/dates/{date}
//	GET    /api/v1/dates/{date}/format?pattern=
//	GET    /api/v1/dates/{date}/shift?years=&months=&days=
//	GET    /api/v1/months/{year}/{month}
//	GET    /api/v1/seasons/{year}
//	POST   /api/v1/parse
//	GET    /api/v1/events                      (API key)
//	POST   /api/v1/events                      (API key)
//	GET    /api/v1/events/{id}                 (API key)
//	DELETE /api/v1/events/{id}                 (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
		MetricsMiddleware(m),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

		// ======================================================================
		// Calendar routes (public)
		// ======================================================================
		r.Get("/today", handlers.GetToday)
		r.Get("/now", handlers.GetNow)
		r.Get("/convert/gregorian/{date}", handlers.ConvertGregorian)
		r.Get("/convert/persian/{date}", handlers.ConvertPersian)

		r.Route("/dates", func(r chi.Router) {
			r.Get("/between", handlers.GetDaysBetween)
			r.Get("/range", handlers.GetDateRange)
			r.Get("/{date}", handlers.GetDate)
			r.Get("/{date}/format", handlers.FormatDate)
			r.Get("/{date}/shift", handlers.ShiftDate)
		})

		r.Get("/months/{year}/{month}", handlers.GetMonth)
		r.Get("/seasons/{year}", handlers.GetSeasons)
		r.Post("/parse", handlers.Parse)

		// ======================================================================
		// Event routes (API key)
		// ======================================================================
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Get("/events", handlers.ListEvents)
			r.Post("/events", handlers.CreateEvent)
			r.Get("/events/{id}", handlers.GetEvent)
			r.Delete("/events/{id}", handlers.DeleteEvent)
		})
	})

	return r
}
