package model

import "time"

// Room types and operational statuses.
const (
	RoomTypeSingle = "SINGLE"
	RoomTypeDouble = "DOUBLE"

	RoomStatusActive      = "ACTIVE"
	RoomStatusMaintenance = "MAINTENANCE"
)

// Today statuses derived by the occupancy aggregator. MAINTENANCE wins
// over OCCUPIED.
const (
	TodayStatusMaintenance = "MAINTENANCE"
	TodayStatusOccupied    = "OCCUPIED"
	TodayStatusAvailable   = "AVAILABLE"
)

// Room is a physical room. (guest_house_id, room_number) is unique among
// active rooms, enforced by a compound index.
type Room struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	GuestHouseID string    `json:"guest_house_id" bson:"guest_house_id" validate:"required,mongodb"`
	RoomNumber   string    `json:"room_number" bson:"room_number" validate:"required,min=1,max=20"`
	Type         string    `json:"type" bson:"type" validate:"required,oneof=SINGLE DOUBLE"`
	Capacity     int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=10"`
	Floor        int       `json:"floor" bson:"floor" validate:"omitempty,min=0,max=50"`
	Amenities    []string  `json:"amenities" bson:"amenities" validate:"omitempty,dive,max=50"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=ACTIVE MAINTENANCE"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// RoomUpdate carries the patchable subset of Room fields.
type RoomUpdate struct {
	RoomNumber string    `json:"room_number,omitempty" validate:"omitempty,min=1,max=20"`
	Type       string    `json:"type,omitempty" validate:"omitempty,oneof=SINGLE DOUBLE"`
	Capacity   *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=10"`
	Floor      *int      `json:"floor,omitempty" validate:"omitempty,min=0,max=50"`
	Amenities  *[]string `json:"amenities,omitempty" validate:"omitempty,dive,max=50"`
	Status     string    `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE MAINTENANCE"`
}

// RoomTodayStats is a room decorated with its derived occupancy state for
// the current business day.
type RoomTodayStats struct {
	ID                       string   `json:"id"`
	RoomNumber               string   `json:"room_number"`
	Type                     string   `json:"type"`
	Capacity                 int      `json:"capacity"`
	Floor                    int      `json:"floor"`
	Amenities                []string `json:"amenities"`
	Status                   string   `json:"status"`
	TodayStatus              string   `json:"today_status"`
	IsAvailableForAllocation bool     `json:"is_available_for_allocation"`
}
