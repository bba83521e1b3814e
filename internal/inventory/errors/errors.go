package errors

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrGuestHouseNotFound = errors.New("guest house not found")
	ErrInvalidID          = errors.New("invalid ID format")
	ErrDuplicateRoom      = errors.New("room number already exists in guest house")
	ErrGuestHouseInUse    = errors.New("guest house has bookings")
)
