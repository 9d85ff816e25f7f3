package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xavierca1/sba-tracking/internal/analytics"
	"github.com/xavierca1/sba-tracking/internal/entity"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	questionnairesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "questionnaires_submitted_total",
			Help: "Total number of questionnaires stored",
		},
	)

	statusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questionnaire_status_updates_total",
			Help: "Total number of status changes by target status",
		},
		[]string{"status"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)

	funnelTotals = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "questionnaire_funnel_total",
			Help: "Current funnel counts computed from the stored questionnaires",
		},
		[]string{"metric"},
	)

	funnelRates = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "questionnaire_funnel_rate_percent",
			Help: "Current funnel conversion rates in percent",
		},
		[]string{"metric"},
	)
)

// Metrics labels requests by route pattern so path parameters do not explode cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordSubmission() {
	questionnairesSubmitted.Inc()
}

func RecordStatusUpdate(status entity.Status) {
	statusUpdates.WithLabelValues(status.String()).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

// SetAggregateGauges publishes the latest dashboard aggregates.
func SetAggregateGauges(agg analytics.Aggregates) {
	funnelTotals.WithLabelValues("submissions").Set(float64(agg.TotalSubmissions))
	funnelTotals.WithLabelValues("appointments_booked").Set(float64(agg.AppointmentsBooked))
	funnelTotals.WithLabelValues("qualified_show_ups").Set(float64(agg.QualifiedShowUps))
	funnelTotals.WithLabelValues("no_shows").Set(float64(agg.NoShows))
	funnelTotals.WithLabelValues("disqualified").Set(float64(agg.Disqualified))
	funnelTotals.WithLabelValues("closed").Set(float64(agg.Closed))
	funnelTotals.WithLabelValues("untracked").Set(float64(agg.Untracked))
	funnelTotals.WithLabelValues("upcoming_appointments").Set(float64(agg.UpcomingAppointments))
	funnelTotals.WithLabelValues("past_appointments").Set(float64(agg.PastAppointments))

	funnelRates.WithLabelValues("application_to_meeting").Set(agg.ApplicationToMeetingConversion)
	funnelRates.WithLabelValues("meeting_to_close").Set(agg.MeetingToCloseRate)
}
