package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrRoomUnavailable = errors.New("room not available")

	ErrRoomAlreadyBooked = errors.New("room already booked for the requested interval")
)
