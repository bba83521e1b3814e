package notify

import "time"

// Event types carried on the notification topic.
const (
	EventBookingCreated     = "booking.created"
	EventBookingTransition  = "booking.transition"
	SourceReservationEngine = "reservations"
)

// BookingCreatedEvent announces a new booking. CredentialsToken is set
// only when a guest account was provisioned as part of the booking; it is
// the sealed email/password pair, so the generated password never rides
// the broker in cleartext.
type BookingCreatedEvent struct {
	BookingID        string    `json:"booking_id"`
	GuestHouseID     string    `json:"guest_house_id"`
	RoomID           string    `json:"room_id"`
	UserID           string    `json:"user_id"`
	GuestEmail       string    `json:"guest_email"`
	GuestName        string    `json:"guest_name"`
	Status           string    `json:"status"`
	CheckInDate      time.Time `json:"check_in_date"`
	CheckOutDate     time.Time `json:"check_out_date"`
	CredentialsToken string    `json:"credentials_token,omitempty"`
}

// BookingTransitionEvent announces a lifecycle change on a booking.
type BookingTransitionEvent struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	GuestEmail string    `json:"guest_email"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	At         time.Time `json:"at"`
}
