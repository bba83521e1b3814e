package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	bookingsrepo "guesthouse/internal/bookings/repository"
	inventoryerrors "guesthouse/internal/inventory/errors"
	inventoryrepo "guesthouse/internal/inventory/repository"
	"guesthouse/pkg/clock"
	"guesthouse/pkg/config"
	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/model"
)

// Availability is the blocked-slot view of one room over a query window.
type Availability struct {
	RoomID       string        `json:"room_id"`
	From         time.Time     `json:"from"`
	To           time.Time     `json:"to"`
	BlockedSlots []BlockedSlot `json:"blocked_slots"`
}

type BlockedSlot struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// RoomsStats is the per-room breakdown of one guest house for today.
type RoomsStats struct {
	Summary model.RoomStatsSummary  `json:"summary"`
	Rooms   []*model.RoomTodayStats `json:"rooms"`
}

type OccupancyService interface {
	Availability(ctx context.Context, roomID string, from, to time.Time) (*Availability, error)
	RoomsStats(ctx context.Context, guestHouseID string) (*RoomsStats, error)
	GuestHouseStats(ctx context.Context) ([]*model.GuestHouseStats, error)
	DashboardStats(ctx context.Context, actor *model.Actor) (*model.DashboardStats, error)
}

type occupancyService struct {
	bookingRepo    bookingsrepo.BookingRepository
	roomRepo       inventoryrepo.RoomRepository
	guestHouseRepo inventoryrepo.GuestHouseRepository
	clock          *clock.Resolver
	cfg            *config.Config
}

func NewOccupancyService(
	bookingRepo bookingsrepo.BookingRepository,
	roomRepo inventoryrepo.RoomRepository,
	guestHouseRepo inventoryrepo.GuestHouseRepository,
	resolver *clock.Resolver,
	cfg *config.Config,
) OccupancyService {
	return &occupancyService{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		guestHouseRepo: guestHouseRepo,
		clock:          resolver,
		cfg:            cfg,
	}
}

// Availability lists the intervals blocking a room inside [from, to).
func (s *occupancyService) Availability(ctx context.Context, roomID string, from, to time.Time) (*Availability, error) {
	if roomID == "" {
		return nil, apperrors.InvalidInput("room_id is required")
	}
	if !primitive.IsValidObjectID(roomID) {
		return nil, apperrors.InvalidInput("Invalid room ID format")
	}
	if !from.Before(to) {
		return nil, apperrors.InvalidInput("from must be before to")
	}

	bookings, err := s.bookingRepo.FindOverlapping(ctx, roomID, from.UTC(), to.UTC())
	if err != nil {
		s.cfg.Log.Error("Failed to query room availability", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to query availability", err)
	}

	slots := make([]BlockedSlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, BlockedSlot{From: b.CheckInDate, To: b.CheckOutDate})
	}

	return &Availability{
		RoomID:       roomID,
		From:         from.UTC(),
		To:           to.UTC(),
		BlockedSlots: slots,
	}, nil
}

// RoomsStats computes today's status per room of a guest house plus a
// summary over them. MAINTENANCE wins over OCCUPIED.
func (s *occupancyService) RoomsStats(ctx context.Context, guestHouseID string) (*RoomsStats, error) {
	if guestHouseID == "" {
		return nil, apperrors.InvalidInput("guest_house_id is required")
	}

	if _, err := s.guestHouseRepo.FindByID(ctx, guestHouseID); err != nil {
		if errors.Is(err, inventoryerrors.ErrGuestHouseNotFound) {
			return nil, apperrors.NotFoundWithID("GuestHouse", guestHouseID)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid guest house ID format")
		}
		return nil, apperrors.Internal("Failed to verify guest house", err)
	}

	rooms, err := s.roomRepo.FindActiveByGuestHouse(ctx, guestHouseID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}

	occupiedRooms, err := s.occupiedRoomIDs(ctx, guestHouseID)
	if err != nil {
		return nil, err
	}

	stats := &RoomsStats{Rooms: make([]*model.RoomTodayStats, 0, len(rooms))}
	for _, room := range rooms {
		todayStatus := model.TodayStatusAvailable
		switch {
		case room.Status == model.RoomStatusMaintenance:
			todayStatus = model.TodayStatusMaintenance
			stats.Summary.UnderMaintenanceToday++
		case occupiedRooms[room.ID]:
			todayStatus = model.TodayStatusOccupied
			stats.Summary.OccupiedToday++
		}

		stats.Rooms = append(stats.Rooms, &model.RoomTodayStats{
			ID:                       room.ID,
			RoomNumber:               room.RoomNumber,
			Type:                     room.Type,
			Capacity:                 room.Capacity,
			Floor:                    room.Floor,
			Amenities:                room.Amenities,
			Status:                   room.Status,
			TodayStatus:              todayStatus,
			IsAvailableForAllocation: todayStatus == model.TodayStatusAvailable,
		})
	}

	stats.Summary.TotalRooms = len(rooms)
	stats.Summary.AvailableToday = available(len(rooms), stats.Summary.OccupiedToday, stats.Summary.UnderMaintenanceToday)
	stats.Summary.UtilizationToday = utilization(stats.Summary.OccupiedToday, len(rooms))

	return stats, nil
}

// GuestHouseStats returns today's occupancy summary for every active
// guest house.
func (s *occupancyService) GuestHouseStats(ctx context.Context) ([]*model.GuestHouseStats, error) {
	var houses []*model.GuestHouse
	for offset := int64(0); ; offset += int64(config.DefaultPaginationLimit) {
		page, err := s.guestHouseRepo.FindAllActive(ctx, config.DefaultPaginationLimit, offset)
		if err != nil {
			return nil, apperrors.Internal("Failed to list guest houses", err)
		}
		houses = append(houses, page...)
		if len(page) < config.DefaultPaginationLimit {
			break
		}
	}

	stats := make([]*model.GuestHouseStats, len(houses))
	var wg sync.WaitGroup
	errs := make([]error, len(houses))

	for i, gh := range houses {
		wg.Add(1)
		go func(i int, gh *model.GuestHouse) {
			defer wg.Done()
			stats[i], errs[i] = s.guestHouseStats(ctx, gh)
		}(i, gh)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (s *occupancyService) guestHouseStats(ctx context.Context, gh *model.GuestHouse) (*model.GuestHouseStats, error) {
	rooms, err := s.roomRepo.FindActiveByGuestHouse(ctx, gh.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}

	occupiedRooms, err := s.occupiedRoomIDs(ctx, gh.ID)
	if err != nil {
		return nil, err
	}

	stats := &model.GuestHouseStats{GuestHouse: *gh, TotalRooms: len(rooms)}
	for _, room := range rooms {
		switch {
		case room.Status == model.RoomStatusMaintenance:
			stats.UnderMaintenance++
		case occupiedRooms[room.ID]:
			stats.Occupied++
		}
	}

	stats.Available = available(stats.TotalRooms, stats.Occupied, stats.UnderMaintenance)
	stats.Utilization = utilization(stats.Occupied, stats.TotalRooms)

	return stats, nil
}

// DashboardStats aggregates across the whole portfolio. Operators get the
// maintenance and active-booking figures; self-service requesters get
// their own booking count instead.
func (s *occupancyService) DashboardStats(ctx context.Context, actor *model.Actor) (*model.DashboardStats, error) {
	rooms, err := s.roomRepo.FindAllActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}

	windowStart, windowEnd := s.clock.Today()
	occupying, err := s.bookingRepo.FindOccupying(ctx, "", windowStart, windowEnd)
	if err != nil {
		return nil, apperrors.Internal("Failed to query occupancy", err)
	}

	occupiedRooms := make(map[string]bool, len(occupying))
	for _, b := range occupying {
		occupiedRooms[b.RoomID] = true
	}

	stats := &model.DashboardStats{TotalRooms: len(rooms)}
	maintenance := 0
	for _, room := range rooms {
		switch {
		case room.Status == model.RoomStatusMaintenance:
			maintenance++
		case occupiedRooms[room.ID]:
			stats.OccupiedToday++
		}
	}
	stats.AvailableToday = available(len(rooms), stats.OccupiedToday, maintenance)

	if actor.ViewsOwnBookingsOnly() {
		mine, err := s.bookingRepo.Count(ctx, bookingsrepo.ListFilter{UserID: actor.ID})
		if err != nil {
			return nil, apperrors.Internal("Failed to count bookings", err)
		}
		stats.MyBookings = &mine
		return stats, nil
	}

	stats.UnderMaintenance = &maintenance
	active := len(occupying)
	stats.TodayActiveBookings = &active
	return stats, nil
}

// occupiedRoomIDs returns the set of rooms in a guest house occupied at
// some point today.
func (s *occupancyService) occupiedRoomIDs(ctx context.Context, guestHouseID string) (map[string]bool, error) {
	windowStart, windowEnd := s.clock.Today()
	occupying, err := s.bookingRepo.FindOccupying(ctx, guestHouseID, windowStart, windowEnd)
	if err != nil {
		return nil, apperrors.Internal("Failed to query occupancy", err)
	}

	occupied := make(map[string]bool, len(occupying))
	for _, b := range occupying {
		occupied[b.RoomID] = true
	}
	return occupied, nil
}

func available(total, occupied, maintenance int) int {
	return max(total-occupied-maintenance, 0)
}

func utilization(occupied, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}
