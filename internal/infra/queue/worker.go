package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/sba-tracking/internal/infra/http/middleware"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

// SubmissionNotifier delivers the notification for one submission (e-mail, CRM, ...).
type SubmissionNotifier interface {
	NotifySubmission(ctx context.Context, payload SubmissionPayload) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel     consumer
	Notifier    SubmissionNotifier
	recordError func(service string)
}

func NewWorker(ch consumer, notifier SubmissionNotifier) *Worker {
	return &Worker{
		Channel:     ch,
		Notifier:    notifier,
		recordError: middleware.RecordIntegrationError,
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Log.Info().Str("queue", queueName).Msg("submission worker waiting for messages")

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("submission worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn().Msg("submission delivery channel closed")
				return nil
			}
			w.handleDelivery(ctx, d)
		}
	}
}

// handleDelivery acks on success and dead-letters everything else without requeue.
func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var payload SubmissionPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		logger.Log.Error().Err(err).Msg("malformed submission message")
		d.Nack(false, false)
		return
	}

	if err := w.Notifier.NotifySubmission(ctx, payload); err != nil {
		logger.Log.Error().Err(err).
			Str("questionnaire_id", payload.QuestionnaireID).
			Msg("submission notification failed")
		if w.recordError != nil {
			w.recordError("smtp")
		}
		d.Nack(false, false)
		return
	}

	logger.Log.Info().Str("questionnaire_id", payload.QuestionnaireID).Msg("submission notification sent")
	d.Ack(false)
}
