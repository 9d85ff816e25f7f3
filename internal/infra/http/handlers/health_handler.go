package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type brokerConn interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB          Pinger
	RabbitMQ    brokerConn
	MailEnabled bool
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler accepts a nil broker connection when events are disabled.
func NewHealthHandler(db Pinger, rabbitMQ *amqp091.Connection, mailEnabled bool) *HealthHandler {
	h := &HealthHandler{
		DB:          db,
		MailEnabled: mailEnabled,
		StartTime:   time.Now(),
	}
	if rabbitMQ != nil {
		h.RabbitMQ = rabbitMQ
	}
	return h
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			logger.Log.Warn().Err(err).Msg("health check: database ping failed")
			deps["database"] = "unhealthy"
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.MailEnabled {
		deps["mail"] = "configured"
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
