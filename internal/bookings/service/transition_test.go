package service

import (
	"context"
	"testing"
	"time"

	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/model"
)

func storedBooking(status string) *model.Booking {
	return &model.Booking{
		ID:            testBookingID,
		GuestHouseID:  testGuestHouseID,
		RoomID:        testRoomID,
		UserID:        testUserID,
		CheckInDate:   time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC),
		CheckOutDate:  time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC),
		Status:        status,
		CreatedBy:     testUserID,
		CreatedByRole: model.RoleCustomer,
	}
}

func TestApplyAction_ApproveFromPending(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	mocks.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return storedBooking(model.StatusPending), nil
	}

	booking, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionApprove)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if booking.Status != model.StatusBooked {
		t.Errorf("expected BOOKED, got %s", booking.Status)
	}
	if booking.GuestHouse == nil || booking.GuestHouse.Name != "Lakeview" {
		t.Errorf("expected resolved guest house summary, got %+v", booking.GuestHouse)
	}
	if mocks.bookings.capturedBooking == nil {
		t.Fatal("expected status to be persisted")
	}
	if len(mocks.dispatcher.transitionEvents) != 1 {
		t.Fatalf("expected 1 transition event, got %d", len(mocks.dispatcher.transitionEvents))
	}
	event := mocks.dispatcher.transitionEvents[0]
	if event.FromStatus != model.StatusPending || event.ToStatus != model.StatusBooked {
		t.Errorf("unexpected event statuses: %s -> %s", event.FromStatus, event.ToStatus)
	}
}

func TestApplyAction_CheckInFromPendingRejected(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	mocks.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return storedBooking(model.StatusPending), nil
	}

	_, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionCheckIn)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidTransition {
		t.Errorf("expected INVALID_TRANSITION, got %v", err)
	}
	if mocks.bookings.capturedBooking != nil {
		t.Error("status must not be written on a rejected transition")
	}
	if len(mocks.dispatcher.transitionEvents) != 0 {
		t.Error("no event must be published on a rejected transition")
	}
}

func TestApplyAction_CheckInStampsActualTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 22, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	mocks.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return storedBooking(model.StatusBooked), nil
	}

	booking, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionCheckIn)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if booking.Status != model.StatusCheckedIn {
		t.Errorf("expected CHECKED_IN, got %s", booking.Status)
	}
	if booking.ActualCheckIn == nil || !booking.ActualCheckIn.Equal(now) {
		t.Errorf("expected actual_check_in %v, got %v", now, booking.ActualCheckIn)
	}
	if booking.ActualCheckOut != nil {
		t.Error("actual_check_out must stay unset on check-in")
	}
}

func TestApplyAction_CheckOutStampsActualTime(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 45, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	mocks.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return storedBooking(model.StatusCheckedIn), nil
	}

	booking, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionCheckOut)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if booking.Status != model.StatusCheckedOut {
		t.Errorf("expected CHECKED_OUT, got %s", booking.Status)
	}
	if booking.ActualCheckOut == nil || !booking.ActualCheckOut.Equal(now) {
		t.Errorf("expected actual_check_out %v, got %v", now, booking.ActualCheckOut)
	}
}

func TestApplyAction_SecondCheckInRejected(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 22, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	mocks.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return storedBooking(model.StatusCheckedIn), nil
	}

	_, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionCheckIn)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidTransition {
		t.Errorf("expected INVALID_TRANSITION, got %v", err)
	}
}

func TestApplyAction_CancelOnlyFromBooked(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	current := storedBooking(model.StatusPending)
	mocks.bookings.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return current, nil
	}

	_, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionCancel)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidTransition {
		t.Errorf("expected INVALID_TRANSITION cancelling a pending booking, got %v", err)
	}

	current = storedBooking(model.StatusBooked)
	booking, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, model.ActionCancel)
	if err != nil {
		t.Fatalf("expected cancel from BOOKED to succeed, got %v", err)
	}
	if booking.Status != model.StatusCancelled {
		t.Errorf("expected CANCELLED, got %s", booking.Status)
	}
}

func TestApplyAction_UnknownAction(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc, mocks := newTestService(t, now)

	_, err := svc.ApplyAction(context.Background(), adminActor(), testBookingID, "EXPEDITE")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeUnknownAction {
		t.Errorf("expected UNKNOWN_ACTION, got %v", err)
	}
	if mocks.bookings.capturedBooking != nil {
		t.Error("unknown actions must not touch storage")
	}
}

func TestApplyAction_CustomerForbidden(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.ApplyAction(context.Background(), customerActor(), testBookingID, model.ActionApprove)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}
}

func TestApplyTransition_Table(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		status  string
		action  string
		wantTo  string
		wantErr bool
	}{
		{name: "approve pending", status: model.StatusPending, action: model.ActionApprove, wantTo: model.StatusBooked},
		{name: "reject pending", status: model.StatusPending, action: model.ActionReject, wantTo: model.StatusRejected},
		{name: "check in booked", status: model.StatusBooked, action: model.ActionCheckIn, wantTo: model.StatusCheckedIn},
		{name: "check out checked in", status: model.StatusCheckedIn, action: model.ActionCheckOut, wantTo: model.StatusCheckedOut},
		{name: "cancel booked", status: model.StatusBooked, action: model.ActionCancel, wantTo: model.StatusCancelled},
		{name: "approve booked", status: model.StatusBooked, action: model.ActionApprove, wantErr: true},
		{name: "reject booked", status: model.StatusBooked, action: model.ActionReject, wantErr: true},
		{name: "check out booked", status: model.StatusBooked, action: model.ActionCheckOut, wantErr: true},
		{name: "cancel checked in", status: model.StatusCheckedIn, action: model.ActionCancel, wantErr: true},
		{name: "check in checked out", status: model.StatusCheckedOut, action: model.ActionCheckIn, wantErr: true},
		{name: "cancel cancelled", status: model.StatusCancelled, action: model.ActionCancel, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking := storedBooking(tc.status)
			err := applyTransition(booking, tc.action, now)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, booking moved to %s", booking.Status)
				}
				if booking.Status != tc.status {
					t.Errorf("status must be unchanged on error, got %s", booking.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if booking.Status != tc.wantTo {
				t.Errorf("expected %s, got %s", tc.wantTo, booking.Status)
			}
		})
	}
}
