package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"guesthouse/pkg/kafka"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/sealer"
)

// Deliverer consumes booking events and hands them to a delivery channel
// (email today; the sender is pluggable for tests). Returning an error
// from Handle leaves the offset uncommitted so the event is retried.
type Deliverer struct {
	log     *logger.Logger
	sender  Sender
	sealKey string
}

// Sender delivers a rendered notification to a recipient.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

func NewDeliverer(log *logger.Logger, sender Sender, sealKey string) *Deliverer {
	return &Deliverer{log: log, sender: sender, sealKey: sealKey}
}

func (d *Deliverer) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.Headers[kafka.HeaderEventType]

	switch eventType {
	case EventBookingCreated:
		var event BookingCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			d.log.Error("failed to decode booking created event", "error", err)
			return nil
		}
		return d.deliverCreated(ctx, event)
	case EventBookingTransition:
		var event BookingTransitionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			d.log.Error("failed to decode booking transition event", "error", err)
			return nil
		}
		return d.deliverTransition(ctx, event)
	default:
		d.log.Warn("skipping unknown event type", "event_type", eventType)
		return nil
	}
}

func (d *Deliverer) deliverCreated(ctx context.Context, event BookingCreatedEvent) error {
	subject := fmt.Sprintf("Booking %s received", event.BookingID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking from %s to %s is %s.\n",
		event.GuestName,
		event.CheckInDate.Format("2006-01-02"),
		event.CheckOutDate.Format("2006-01-02"),
		event.Status,
	)
	if event.CredentialsToken != "" {
		email, pass, err := sealer.OpenCredentials(d.sealKey, event.CredentialsToken)
		if err != nil {
			d.log.Error("failed to open credentials token", "booking_id", event.BookingID, "error", err)
		} else {
			body += fmt.Sprintf(
				"\nAn account was created for you.\nEmail: %s\nPassword: %s\nPlease change the password after your first login.\n",
				email,
				pass,
			)
		}
	}

	if err := d.sender.Send(ctx, event.GuestEmail, subject, body); err != nil {
		return fmt.Errorf("failed to deliver booking created notification: %w", err)
	}

	d.log.Info("delivered booking created notification", "booking_id", event.BookingID, "status", event.Status)
	return nil
}

func (d *Deliverer) deliverTransition(ctx context.Context, event BookingTransitionEvent) error {
	subject := fmt.Sprintf("Booking %s update", event.BookingID)
	body := fmt.Sprintf(
		"Your booking status changed from %s to %s.\n",
		event.FromStatus,
		event.ToStatus,
	)

	if err := d.sender.Send(ctx, event.GuestEmail, subject, body); err != nil {
		return fmt.Errorf("failed to deliver booking transition notification: %w", err)
	}

	d.log.Info("delivered booking transition notification",
		"booking_id", event.BookingID,
		"from", event.FromStatus,
		"to", event.ToStatus,
	)
	return nil
}

// LogSender writes notifications to the service log. Stands in until an
// SMTP relay is provisioned.
type LogSender struct {
	Log *logger.Logger
}

func (s *LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.Log.Info("notification", "recipient", recipient, "subject", subject, "body", body)
	return nil
}
