package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"guesthouse/pkg/kafka"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/sealer"
)

const testSealKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

type captureSender struct {
	recipient string
	subject   string
	body      string
	err       error
	calls     int
}

func (s *captureSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.calls++
	s.recipient = recipient
	s.subject = subject
	s.body = body
	return s.err
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func createdMessage(t *testing.T, event BookingCreatedEvent) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage(event.BookingID, EventBookingCreated, SourceReservationEngine, event)
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}
	return msg
}

func TestHandle_BookingCreated(t *testing.T) {
	sender := &captureSender{}
	d := NewDeliverer(testLog(), sender, testSealKey)

	event := BookingCreatedEvent{
		BookingID:    "booking-1",
		GuestName:    "Asha Rao",
		GuestEmail:   "asha@example.com",
		Status:       "PENDING",
		CheckInDate:  time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC),
	}

	if err := d.Handle(context.Background(), createdMessage(t, event)); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if sender.recipient != "asha@example.com" {
		t.Errorf("unexpected recipient %q", sender.recipient)
	}
	if !strings.Contains(sender.body, "2024-05-01") || !strings.Contains(sender.body, "PENDING") {
		t.Errorf("body missing stay details: %q", sender.body)
	}
	if strings.Contains(sender.body, "An account was created") {
		t.Error("no credentials block expected without a token")
	}
}

func TestHandle_BookingCreatedWithCredentials(t *testing.T) {
	sender := &captureSender{}
	d := NewDeliverer(testLog(), sender, testSealKey)

	token, err := sealer.SealCredentials(testSealKey, "new.guest@example.com", "one-time-pass")
	if err != nil {
		t.Fatalf("failed to seal credentials: %v", err)
	}
	event := BookingCreatedEvent{
		BookingID:        "booking-2",
		GuestName:        "New Guest",
		GuestEmail:       "new.guest@example.com",
		Status:           "BOOKED",
		CheckInDate:      time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC),
		CredentialsToken: token,
	}

	if err := d.Handle(context.Background(), createdMessage(t, event)); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(sender.body, "one-time-pass") {
		t.Errorf("body must carry the unsealed password: %q", sender.body)
	}
}

func TestHandle_BookingTransition(t *testing.T) {
	sender := &captureSender{}
	d := NewDeliverer(testLog(), sender, testSealKey)

	event := BookingTransitionEvent{
		BookingID:  "booking-3",
		GuestEmail: "asha@example.com",
		Action:     "CHECK_IN",
		FromStatus: "BOOKED",
		ToStatus:   "CHECKED_IN",
	}
	msg, err := kafka.NewMessage(event.BookingID, EventBookingTransition, SourceReservationEngine, event)
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(sender.body, "BOOKED") || !strings.Contains(sender.body, "CHECKED_IN") {
		t.Errorf("body missing transition: %q", sender.body)
	}
}

func TestHandle_UnknownEventCommitted(t *testing.T) {
	sender := &captureSender{}
	d := NewDeliverer(testLog(), sender, testSealKey)

	msg := kafka.Message{
		Value:   []byte(`{}`),
		Headers: map[string]string{kafka.HeaderEventType: "booking.snoozed"},
	}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Errorf("unknown events must be skipped without error, got %v", err)
	}
	if sender.calls != 0 {
		t.Error("unknown events must not be delivered")
	}
}

func TestHandle_UndecodablePayloadCommitted(t *testing.T) {
	sender := &captureSender{}
	d := NewDeliverer(testLog(), sender, testSealKey)

	msg := kafka.Message{
		Value:   []byte(`{broken`),
		Headers: map[string]string{kafka.HeaderEventType: EventBookingCreated},
	}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Errorf("poison payloads must be skipped without error, got %v", err)
	}
}

func TestHandle_DeliveryFailureRetried(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp unreachable")}
	d := NewDeliverer(testLog(), sender, testSealKey)

	event := BookingCreatedEvent{BookingID: "booking-4", GuestEmail: "asha@example.com"}
	if err := d.Handle(context.Background(), createdMessage(t, event)); err == nil {
		t.Error("delivery failures must propagate so the offset is retried")
	}
}
