package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Discard()
	m.Run()
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, msg)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySubmission(ctx context.Context, payload SubmissionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type fakeAcknowledger struct {
	acked, nacked, requeued bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
}

func (c *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return c.deliveries, nil
}

func samplePayload() SubmissionPayload {
	return SubmissionPayload{
		QuestionnaireID: "q-1",
		EventID:         "evt-100",
		Name:            "Dana Reyes",
		Email:           "dana@example.com",
		Phone:           "+1 555 0100",
		ReviewURL:       "https://tracking.example.com/review/q-1",
		SubmittedAt:     time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishSubmission(t *testing.T) {
	ch := new(MockPublisher)
	ch.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got SubmissionPayload
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.DeliveryMode == amqp.Persistent &&
			msg.ContentType == "application/json" &&
			msg.MessageId == "q-1" &&
			got.EventID == "evt-100"
	})).Return(nil)

	err := NewProducer(ch).PublishSubmission(context.Background(), samplePayload())

	assert.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublishSubmissionWrapsBrokerError(t *testing.T) {
	brokerErr := errors.New("channel/connection is not open")
	ch := new(MockPublisher)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(brokerErr)

	var recorded []string
	p := NewProducer(ch)
	p.recordError = func(service string) { recorded = append(recorded, service) }

	err := p.PublishSubmission(context.Background(), samplePayload())

	assert.ErrorIs(t, err, brokerErr)
	assert.Equal(t, []string{"rabbitmq"}, recorded)
}

func TestSubmissionPayloadWireKeys(t *testing.T) {
	body, err := json.Marshal(samplePayload())
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal(body, &data))

	for _, key := range []string{"questionnaire_id", "event_id", "name", "email", "phone", "review_url", "submitted_at"} {
		assert.Contains(t, data, key)
	}
}

func TestHandleDeliveryAcksOnSuccess(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("NotifySubmission", mock.Anything, samplePayload()).Return(nil)

	body, _ := json.Marshal(samplePayload())
	ack := &fakeAcknowledger{}

	w := NewWorker(nil, notifier)
	w.recordError = func(string) { t.Error("no integration error expected on success") }

	w.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	notifier.AssertExpectations(t)
}

func TestHandleDeliveryDeadLettersFailures(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("NotifySubmission", mock.Anything, mock.Anything).Return(errors.New("smtp: 421"))

	body, _ := json.Marshal(samplePayload())
	ack := &fakeAcknowledger{}

	var recorded []string
	w := NewWorker(nil, notifier)
	w.recordError = func(service string) { recorded = append(recorded, service) }

	w.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.False(t, ack.acked)
	assert.Equal(t, []string{"smtp"}, recorded)
}

func TestHandleDeliveryRejectsMalformedBody(t *testing.T) {
	notifier := new(MockNotifier)
	ack := &fakeAcknowledger{}

	NewWorker(nil, notifier).handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

	assert.True(t, ack.nacked)
	notifier.AssertNotCalled(t, "NotifySubmission", mock.Anything, mock.Anything)
}

func TestWorkerStartStopsOnContextCancel(t *testing.T) {
	notified := make(chan struct{}, 1)
	notifier := new(MockNotifier)
	notifier.On("NotifySubmission", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { notified <- struct{}{} }).
		Return(nil)

	deliveries := make(chan amqp.Delivery, 1)
	body, _ := json.Marshal(samplePayload())
	ack := &fakeAcknowledger{}
	deliveries <- amqp.Delivery{Acknowledger: ack, Body: body}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewWorker(&fakeConsumer{deliveries: deliveries}, notifier).Start(ctx, QueueName)
	}()

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("delivery was not processed")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.True(t, ack.acked)
}
