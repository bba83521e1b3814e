package model

import "time"

// Guest house categories.
const (
	CategoryStandard  = "STANDARD"
	CategoryExecutive = "EXECUTIVE"
	CategoryPremium   = "PREMIUM"
)

type GuestHouse struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=100"`
	Category  string    `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,oneof=STANDARD EXECUTIVE PREMIUM"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=300"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty" validate:"omitempty,mongodb"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// GuestHouseUpdate carries the patchable subset of GuestHouse fields.
type GuestHouseUpdate struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=STANDARD EXECUTIVE PREMIUM"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=300"`
}

// GuestHouseStats is the per-property occupancy summary for the current
// business day.
type GuestHouseStats struct {
	GuestHouse       `json:",inline"`
	TotalRooms       int `json:"total_rooms"`
	Occupied         int `json:"occupied"`
	UnderMaintenance int `json:"under_maintenance"`
	Available        int `json:"available"`
	Utilization      int `json:"utilization"`
}

// RoomStatsSummary aggregates one guest house's rooms for today.
type RoomStatsSummary struct {
	TotalRooms            int `json:"total_rooms"`
	OccupiedToday         int `json:"occupied_today"`
	AvailableToday        int `json:"available_today"`
	UnderMaintenanceToday int `json:"under_maintenance_today"`
	UtilizationToday      int `json:"utilization_today"`
}

// DashboardStats is the portfolio-wide aggregate. MyBookings is populated
// only for self-service requesters; UnderMaintenance and TodayActiveBookings
// only for operators.
type DashboardStats struct {
	TotalRooms          int    `json:"total_rooms"`
	OccupiedToday       int    `json:"occupied_today"`
	AvailableToday      int    `json:"available_today"`
	UnderMaintenance    *int   `json:"under_maintenance,omitempty"`
	TodayActiveBookings *int   `json:"today_active_bookings,omitempty"`
	MyBookings          *int64 `json:"my_bookings,omitempty"`
}
