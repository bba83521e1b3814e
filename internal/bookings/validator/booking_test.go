package validator

import (
	"strings"
	"testing"
	"time"

	"guesthouse/pkg/logger"
	"guesthouse/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewBookingValidator(log)
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		GuestHouseID: "507f1f77bcf86cd799439011",
		RoomID:       "507f1f77bcf86cd799439012",
		CheckInDate:  time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC),
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	v := newTestValidator(t)
	if err := v.ValidateRequest(validRequest()); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidateRequest_EqualDatesRejected(t *testing.T) {
	v := newTestValidator(t)

	req := validRequest()
	req.CheckOutDate = req.CheckInDate
	err := v.ValidateRequest(req)
	if err == nil {
		t.Fatal("expected error for a zero-night stay")
	}
	if !strings.Contains(err.Error(), "check_out_date must be after check_in_date") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateRequest_ReversedDatesRejected(t *testing.T) {
	v := newTestValidator(t)

	req := validRequest()
	req.CheckInDate, req.CheckOutDate = req.CheckOutDate, req.CheckInDate
	if err := v.ValidateRequest(req); err == nil {
		t.Fatal("expected error for reversed dates")
	}
}

func TestValidateRequest_MalformedIDs(t *testing.T) {
	v := newTestValidator(t)

	req := validRequest()
	req.RoomID = "not-an-object-id"
	err := v.ValidateRequest(req)
	if err == nil {
		t.Fatal("expected error for a malformed room ID")
	}
	if !strings.Contains(err.Error(), "RoomID") {
		t.Errorf("error must name the offending field, got %v", err)
	}
}

func TestValidateRequest_MissingFields(t *testing.T) {
	v := newTestValidator(t)

	err := v.ValidateRequest(&model.BookingRequest{})
	if err == nil {
		t.Fatal("expected error for an empty request")
	}
	for _, field := range []string{"GuestHouseID", "RoomID", "CheckInDate", "CheckOutDate"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in %v", field, err)
		}
	}
}

func TestValidateRequest_BadGuestEmail(t *testing.T) {
	v := newTestValidator(t)

	req := validRequest()
	req.GuestEmail = "not-an-email"
	if err := v.ValidateRequest(req); err == nil {
		t.Fatal("expected error for a malformed guest email")
	}
}

func TestValidateGuestDetails(t *testing.T) {
	v := newTestValidator(t)

	req := validRequest()
	err := v.ValidateGuestDetails(req)
	if err == nil {
		t.Fatal("expected error when guest details are absent")
	}
	if !strings.Contains(err.Error(), "guest_name") || !strings.Contains(err.Error(), "email") {
		t.Errorf("both missing fields must be reported, got %v", err)
	}

	req.GuestName = "Asha Rao"
	req.GuestEmail = "asha@example.com"
	if err := v.ValidateGuestDetails(req); err != nil {
		t.Errorf("expected complete guest details to pass, got %v", err)
	}
}
