package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/sba-tracking/internal/infra/http/handlers"
	"github.com/xavierca1/sba-tracking/internal/infra/http/middleware"
)

type routes struct {
	questionnaire *handlers.QuestionnaireHandler
	status        *handlers.StatusHandler
	appointment   *handlers.AppointmentHandler
	analytics     *handlers.AnalyticsHandler
	health        *handlers.HealthHandler
}

func newRouter(h routes, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/questionnaire", h.questionnaire.Create)
		r.Get("/questionnaire/{id}", h.questionnaire.Get)
		r.Patch("/questionnaire/{id}", h.questionnaire.Update)

		r.Post("/status-update", h.status.Handle)
		r.Post("/updateAppointment", h.appointment.Handle)

		r.Get("/analytics", h.analytics.List)
		r.Get("/analytics/summary", h.analytics.Summary)
		r.Get("/analytics/table", h.analytics.Table)
	})

	return r
}
