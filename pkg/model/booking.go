package model

import (
	"time"
)

// Booking statuses. PENDING and BOOKED are the only initial states;
// REJECTED, CHECKED_OUT and CANCELLED are terminal.
const (
	StatusPending    = "PENDING"
	StatusBooked     = "BOOKED"
	StatusRejected   = "REJECTED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
	StatusCancelled  = "CANCELLED"
)

// Lifecycle actions accepted by PATCH /bookings/id/:id.
const (
	ActionApprove  = "APPROVE"
	ActionReject   = "REJECT"
	ActionCheckIn  = "CHECK_IN"
	ActionCheckOut = "CHECK_OUT"
	ActionCancel   = "CANCEL"
)

// ActiveStatuses are the statuses that count toward occupancy and the
// overlap check. A CHECKED_OUT booking no longer blocks its interval.
var ActiveStatuses = []string{StatusBooked, StatusCheckedIn}

type Booking struct {
	ID             string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	GuestHouseID   string     `json:"guest_house_id" bson:"guest_house_id" validate:"required,mongodb"`
	RoomID         string     `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	UserID         string     `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	CheckInDate    time.Time  `json:"check_in_date" bson:"check_in_date" validate:"required"`
	CheckOutDate   time.Time  `json:"check_out_date" bson:"check_out_date" validate:"required,gtfield=CheckInDate"`
	Purpose        string     `json:"purpose,omitempty" bson:"purpose,omitempty" validate:"omitempty,max=300"`
	Department     string     `json:"department,omitempty" bson:"department,omitempty" validate:"omitempty,max=100"`
	OccupancyType  string     `json:"occupancy_type,omitempty" bson:"occupancy_type,omitempty" validate:"omitempty,max=50"`
	Status         string     `json:"status" bson:"status" validate:"required,oneof=PENDING REJECTED BOOKED CHECKED_IN CHECKED_OUT CANCELLED"`
	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty" bson:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty" bson:"actual_check_out,omitempty"`
	CreatedBy      string     `json:"created_by" bson:"created_by" validate:"required,mongodb"`
	CreatedByRole  string     `json:"created_by_role" bson:"created_by_role" validate:"required,oneof=SUPER_ADMIN ADMIN CUSTOMER"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// Overlaps reports whether the half-open intervals [a1,a2) and [b1,b2)
// intersect. Back-to-back intervals do not overlap.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// BookingRequest is the client payload for POST /bookings. Guest name and
// email are required only when an operator books on behalf of someone else.
type BookingRequest struct {
	GuestHouseID  string    `json:"guest_house_id" validate:"required,mongodb"`
	RoomID        string    `json:"room_id" validate:"required,mongodb"`
	CheckInDate   time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate  time.Time `json:"check_out_date" validate:"required"`
	Purpose       string    `json:"purpose" validate:"omitempty,max=300"`
	Department    string    `json:"department" validate:"omitempty,max=100"`
	OccupancyType string    `json:"occupancy_type" validate:"omitempty,max=50"`
	GuestName     string    `json:"guest_name" validate:"omitempty,min=2,max=100"`
	GuestEmail    string    `json:"email" validate:"omitempty,email"`
}

// GuestHouseSummary, RoomSummary and UserSummary are the resolved display
// projections attached to bookings returned to callers.
type GuestHouseSummary struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
}

type RoomSummary struct {
	ID         string `json:"id" bson:"_id"`
	RoomNumber string `json:"room_number" bson:"room_number"`
	Type       string `json:"type" bson:"type"`
}

type UserSummary struct {
	ID         string `json:"id" bson:"_id"`
	Name       string `json:"name" bson:"name"`
	Email      string `json:"email" bson:"email"`
	Department string `json:"department,omitempty" bson:"department,omitempty"`
}

// BookingDetails is a Booking with its references resolved for display.
type BookingDetails struct {
	Booking
	GuestHouse *GuestHouseSummary `json:"guest_house,omitempty"`
	Room       *RoomSummary       `json:"room,omitempty"`
	Guest      *UserSummary       `json:"guest,omitempty"`
}
