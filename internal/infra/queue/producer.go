package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/sba-tracking/internal/infra/http/middleware"
)

// SubmissionPayload announces a freshly stored questionnaire to the sales team.
type SubmissionPayload struct {
	QuestionnaireID string    `json:"questionnaire_id"`
	EventID         string    `json:"event_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ReviewURL       string    `json:"review_url"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch          publisher
	recordError func(service string)
}

func NewProducer(ch publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch, recordError: middleware.RecordIntegrationError}
}

func (p *RabbitMQProducer) PublishSubmission(ctx context.Context, payload SubmissionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.QuestionnaireID,
			Timestamp:    payload.SubmittedAt,
		},
	)
	if err != nil {
		if p.recordError != nil {
			p.recordError("rabbitmq")
		}
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
