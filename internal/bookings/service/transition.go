package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "guesthouse/internal/bookings/errors"
	"guesthouse/internal/notify"
	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/model"
)

// transitions is the booking lifecycle. An action is legal only from the
// listed source status; everything else is an invalid transition.
var transitions = map[string]struct {
	from string
	to   string
}{
	model.ActionApprove:  {from: model.StatusPending, to: model.StatusBooked},
	model.ActionReject:   {from: model.StatusPending, to: model.StatusRejected},
	model.ActionCheckIn:  {from: model.StatusBooked, to: model.StatusCheckedIn},
	model.ActionCheckOut: {from: model.StatusCheckedIn, to: model.StatusCheckedOut},
	model.ActionCancel:   {from: model.StatusBooked, to: model.StatusCancelled},
}

// ApplyAction drives the booking through its lifecycle. The booking is
// re-read inside the transaction so the status check and the write see
// the same document even under concurrent operators.
func (s *bookingService) ApplyAction(ctx context.Context, actor *model.Actor, id, action string) (*model.BookingDetails, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !actor.CanManageBookings() {
		return nil, apperrors.Forbidden("You are not allowed to manage bookings")
	}
	if !knownAction(action) {
		return nil, apperrors.UnknownAction(action)
	}

	var booking *model.Booking
	var fromStatus string

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to retrieve booking", err)
		}

		fromStatus = current.Status
		if err := applyTransition(current, action, s.clock.Now()); err != nil {
			return err
		}

		if err := s.repo.UpdateStatus(sessCtx, current); err != nil {
			return apperrors.Internal("Failed to update booking status", err)
		}

		booking = current
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to apply booking action", "id", id, "action", action, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking transitioned",
		"id", booking.ID,
		"action", action,
		"from", fromStatus,
		"to", booking.Status,
	)

	event := notify.BookingTransitionEvent{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		Action:     action,
		FromStatus: fromStatus,
		ToStatus:   booking.Status,
		ActorID:    actor.ID,
		At:         s.clock.Now(),
	}
	if guest, err := s.userRepo.FindByID(ctx, booking.UserID); err == nil {
		event.GuestEmail = guest.Email
	}
	s.dispatcher.BookingTransitioned(ctx, event)

	return s.resolveDetails(ctx, booking), nil
}

func knownAction(action string) bool {
	_, ok := transitions[action]
	return ok
}

// applyTransition mutates the booking in place following the transition
// table. CHECK_IN and CHECK_OUT stamp the actual times as side effects.
func applyTransition(booking *model.Booking, action string, now time.Time) error {
	t := transitions[action]
	if booking.Status != t.from {
		return apperrors.InvalidTransition(fmt.Sprintf(
			"Cannot %s a booking in status %s", action, booking.Status,
		))
	}

	booking.Status = t.to
	switch action {
	case model.ActionCheckIn:
		at := now
		booking.ActualCheckIn = &at
	case model.ActionCheckOut:
		at := now
		booking.ActualCheckOut = &at
	}
	return nil
}
