package worker

import (
	"context"
	"time"

	"github.com/xavierca1/sba-tracking/internal/analytics"
	"github.com/xavierca1/sba-tracking/internal/infra/http/middleware"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

type Summarizer interface {
	Summary(ctx context.Context) (*analytics.Aggregates, error)
}

// AggregateGaugesWorker recomputes the dashboard aggregates on a ticker and
// exports them as Prometheus gauges.
type AggregateGaugesWorker struct {
	summarizer   Summarizer
	tickInterval time.Duration
	publish      func(analytics.Aggregates)
}

func NewAggregateGaugesWorker(summarizer Summarizer, interval time.Duration) *AggregateGaugesWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AggregateGaugesWorker{
		summarizer:   summarizer,
		tickInterval: interval,
		publish:      middleware.SetAggregateGauges,
	}
}

func (w *AggregateGaugesWorker) Start(ctx context.Context) {
	logger.Log.Info().Dur("interval", w.tickInterval).Msg("aggregate gauges worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("aggregate gauges worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *AggregateGaugesWorker) refresh(ctx context.Context) {
	agg, err := w.summarizer.Summary(ctx)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("failed to refresh aggregate gauges")
		return
	}

	w.publish(*agg)
	logger.Log.Debug().
		Int("submissions", agg.TotalSubmissions).
		Int("appointments_booked", agg.AppointmentsBooked).
		Msg("aggregate gauges refreshed")
}
