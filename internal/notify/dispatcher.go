package notify

import (
	"context"

	"guesthouse/pkg/kafka"
	"guesthouse/pkg/logger"
)

// Dispatcher publishes booking events to the notification topic. Delivery
// is best effort: a publish failure is logged and swallowed, never
// surfaced to the caller, because the booking itself has already
// committed.
type Dispatcher interface {
	BookingCreated(ctx context.Context, event BookingCreatedEvent)
	BookingTransitioned(ctx context.Context, event BookingTransitionEvent)
	Close() error
}

type kafkaDispatcher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaDispatcher(brokers []string, topic string, log *logger.Logger) (Dispatcher, error) {
	producer, err := kafka.NewProducer(brokers, topic)
	if err != nil {
		return nil, err
	}
	return &kafkaDispatcher{producer: producer, log: log}, nil
}

func (d *kafkaDispatcher) BookingCreated(ctx context.Context, event BookingCreatedEvent) {
	d.publish(ctx, event.BookingID, EventBookingCreated, event)
}

func (d *kafkaDispatcher) BookingTransitioned(ctx context.Context, event BookingTransitionEvent) {
	d.publish(ctx, event.BookingID, EventBookingTransition, event)
}

func (d *kafkaDispatcher) publish(ctx context.Context, key, eventType string, payload any) {
	msg, err := kafka.NewMessage(key, eventType, SourceReservationEngine, payload)
	if err != nil {
		d.log.Error("failed to build notification message", "event_type", eventType, "booking_id", key, "error", err)
		return
	}

	if err := d.producer.Publish(ctx, msg); err != nil {
		d.log.Error("failed to publish notification", "event_type", eventType, "booking_id", key, "error", err)
	}
}

func (d *kafkaDispatcher) Close() error {
	return d.producer.Close()
}

// NoopDispatcher drops every event. Used when no Kafka brokers are
// configured and in tests.
type NoopDispatcher struct{}

func (NoopDispatcher) BookingCreated(ctx context.Context, event BookingCreatedEvent)        {}
func (NoopDispatcher) BookingTransitioned(ctx context.Context, event BookingTransitionEvent) {}
func (NoopDispatcher) Close() error                                                          { return nil }
