package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "guesthouse/internal/bookings/errors"
	"guesthouse/internal/bookings/repository"
	"guesthouse/internal/bookings/validator"
	inventoryerrors "guesthouse/internal/inventory/errors"
	inventoryrepo "guesthouse/internal/inventory/repository"
	"guesthouse/internal/notify"
	usersrepo "guesthouse/internal/users/repository"
	"guesthouse/pkg/clock"
	"guesthouse/pkg/config"
	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/model"
	"guesthouse/pkg/password"
	"guesthouse/pkg/sanitizer"
	"guesthouse/pkg/sealer"
)

const generatedPasswordLength = 12

type BookingService interface {
	Create(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error)
	GetByID(ctx context.Context, actor *model.Actor, id string) (*model.BookingDetails, error)
	GetAll(ctx context.Context, actor *model.Actor, statuses []string, guestHouseID string, limit int, offset int64) ([]*model.BookingDetails, int64, error)
	ApplyAction(ctx context.Context, actor *model.Actor, id, action string) (*model.BookingDetails, error)
}

type bookingService struct {
	repo           repository.BookingRepository
	lockRepo       repository.BookingLockRepository
	roomRepo       inventoryrepo.RoomRepository
	guestHouseRepo inventoryrepo.GuestHouseRepository
	userRepo       usersrepo.UserRepository
	validator      *validator.BookingValidator
	dispatcher     notify.Dispatcher
	clock          *clock.Resolver
	cfg            *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	roomRepo inventoryrepo.RoomRepository,
	guestHouseRepo inventoryrepo.GuestHouseRepository,
	userRepo usersrepo.UserRepository,
	bookingValidator *validator.BookingValidator,
	dispatcher notify.Dispatcher,
	resolver *clock.Resolver,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:           repo,
		lockRepo:       lockRepo,
		roomRepo:       roomRepo,
		guestHouseRepo: guestHouseRepo,
		userRepo:       userRepo,
		validator:      bookingValidator,
		dispatcher:     dispatcher,
		clock:          resolver,
		cfg:            cfg,
	}
}

// Create books a room for the half-open interval [check_in, check_out).
// Room verification, guest resolution, the overlap check and the insert
// all run inside one transaction, guarded by a per-room advisory lock so
// two concurrent requests for the same room cannot both pass the check.
func (s *bookingService) Create(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
	s.sanitizeRequest(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	onBehalf := actor.CanManageBookings()
	if onBehalf {
		if err := s.validator.ValidateGuestDetails(req); err != nil {
			s.cfg.Log.Warn("Guest details validation failed", "error", err)
			return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
		}
	}

	if err := s.lockRepo.Acquire(ctx, req.RoomID); err != nil {
		if errors.Is(err, bookingserrors.ErrRoomAlreadyBooked) {
			return nil, apperrors.Conflict("This room is currently being booked by another request. Please try again.")
		}
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, req.RoomID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "room_id", req.RoomID, "error", releaseErr)
		}
	}()

	var booking *model.Booking
	var generatedPassword string
	var guest *model.User

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		room, err := s.verifyRoom(sessCtx, req)
		if err != nil {
			return err
		}

		var provisionErr error
		guest, generatedPassword, provisionErr = s.resolveGuest(sessCtx, actor, req, onBehalf)
		if provisionErr != nil {
			return provisionErr
		}

		if err := s.verifyNoOverlap(sessCtx, req); err != nil {
			return err
		}

		booking = &model.Booking{
			GuestHouseID:  req.GuestHouseID,
			RoomID:        room.ID,
			UserID:        guest.ID,
			CheckInDate:   req.CheckInDate.UTC(),
			CheckOutDate:  req.CheckOutDate.UTC(),
			Purpose:       req.Purpose,
			Department:    req.Department,
			OccupancyType: req.OccupancyType,
			Status:        initialStatus(actor),
			CreatedBy:     actor.ID,
			CreatedByRole: actor.Role,
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", req.RoomID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"guest_house_id", booking.GuestHouseID,
		"room_id", booking.RoomID,
		"status", booking.Status,
	)

	event := notify.BookingCreatedEvent{
		BookingID:    booking.ID,
		GuestHouseID: booking.GuestHouseID,
		RoomID:       booking.RoomID,
		UserID:       booking.UserID,
		GuestEmail:   guest.Email,
		GuestName:    guest.Name,
		Status:       booking.Status,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
	}
	if generatedPassword != "" {
		token, sealErr := sealer.SealCredentials(s.cfg.CredentialSealKey, guest.Email, generatedPassword)
		if sealErr != nil {
			s.cfg.Log.Error("Failed to seal guest credentials", "booking_id", booking.ID, "error", sealErr)
		} else {
			event.CredentialsToken = token
		}
	}
	s.dispatcher.BookingCreated(ctx, event)

	return s.resolveDetails(ctx, booking), nil
}

func (s *bookingService) GetByID(ctx context.Context, actor *model.Actor, id string) (*model.BookingDetails, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if actor.ViewsOwnBookingsOnly() && booking.UserID != actor.ID {
		return nil, apperrors.Forbidden("You may only view your own bookings")
	}

	return s.resolveDetails(ctx, booking), nil
}

func (s *bookingService) GetAll(ctx context.Context, actor *model.Actor, statuses []string, guestHouseID string, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	filter := repository.ListFilter{
		Statuses:     statuses,
		GuestHouseID: guestHouseID,
	}
	if actor.ViewsOwnBookingsOnly() {
		filter.UserID = actor.ID
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	details := make([]*model.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		details = append(details, s.resolveDetails(ctx, b))
	}

	return details, count, nil
}

// --- Helpers ---

func (s *bookingService) sanitizeRequest(req *model.BookingRequest) {
	req.Purpose = sanitizer.TrimAndNormalize(req.Purpose)
	req.Department = sanitizer.TrimAndNormalize(req.Department)
	req.OccupancyType = sanitizer.TrimAndNormalize(req.OccupancyType)
	req.GuestName = sanitizer.NormalizeName(req.GuestName)
	req.GuestEmail = sanitizer.NormalizeEmail(req.GuestEmail)
}

// initialStatus is PENDING for self-service requests and BOOKED when an
// operator allocates directly.
func initialStatus(actor *model.Actor) string {
	if actor.CanManageBookings() {
		return model.StatusBooked
	}
	return model.StatusPending
}

func (s *bookingService) verifyRoom(ctx context.Context, req *model.BookingRequest) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, inventoryerrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", req.RoomID)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to verify room", err)
	}

	if !room.IsActive || room.GuestHouseID != req.GuestHouseID {
		return nil, apperrors.NotFoundWithID("Room", req.RoomID)
	}
	if room.Status == model.RoomStatusMaintenance {
		return nil, apperrors.Conflict("Room is under maintenance and cannot be booked")
	}

	return room, nil
}

// resolveGuest determines who the booking is for. Operators booking on
// behalf of a guest get the guest looked up by email and provisioned with
// a generated password if absent; the insert rides the surrounding
// transaction so an overlap failure rolls the new account back too. The
// generated password is returned so it can be sealed into the
// confirmation event, and is never persisted in cleartext.
func (s *bookingService) resolveGuest(ctx context.Context, actor *model.Actor, req *model.BookingRequest, onBehalf bool) (*model.User, string, error) {
	if !onBehalf {
		return &model.User{
			ID:         actor.ID,
			Name:       actor.Name,
			Email:      actor.Email,
			Role:       actor.Role,
			Department: actor.Department,
		}, "", nil
	}

	guest, err := s.userRepo.FindByEmail(ctx, req.GuestEmail)
	if err == nil {
		return guest, "", nil
	}
	if !errors.Is(err, usersrepo.ErrNotFound) {
		return nil, "", apperrors.Internal("Failed to look up guest", err)
	}

	generated, err := password.Generate(generatedPasswordLength)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to generate guest password", err)
	}
	hash, err := password.Hash(generated)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to hash guest password", err)
	}

	guest = &model.User{
		Name:       req.GuestName,
		Email:      req.GuestEmail,
		Password:   hash,
		Role:       model.RoleCustomer,
		Department: req.Department,
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, guest); err != nil {
		if errors.Is(err, usersrepo.ErrDuplicateEmail) {
			return nil, "", apperrors.Conflict("A guest with this email already exists")
		}
		return nil, "", apperrors.Internal("Failed to provision guest", err)
	}

	s.cfg.Log.Info("Provisioned guest account", "user_id", guest.ID)

	return guest, generated, nil
}

func (s *bookingService) verifyNoOverlap(ctx context.Context, req *model.BookingRequest) error {
	from, to := req.CheckInDate.UTC(), req.CheckOutDate.UTC()
	existing, err := s.repo.FindOverlapping(ctx, req.RoomID, from, to)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if model.Overlaps(b.CheckInDate, b.CheckOutDate, from, to) {
			return apperrors.Conflict(fmt.Sprintf(
				"Room is already booked for an overlapping period (%s - %s)",
				b.CheckInDate.Format(time.RFC3339),
				b.CheckOutDate.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// resolveDetails attaches display summaries. Lookup failures degrade to a
// bare booking rather than failing the read.
func (s *bookingService) resolveDetails(ctx context.Context, booking *model.Booking) *model.BookingDetails {
	details := &model.BookingDetails{Booking: *booking}

	if gh, err := s.guestHouseRepo.FindByID(ctx, booking.GuestHouseID); err == nil {
		details.GuestHouse = &model.GuestHouseSummary{
			ID:       gh.ID,
			Name:     gh.Name,
			Location: gh.Location,
			Category: gh.Category,
		}
	}
	if room, err := s.roomRepo.FindByID(ctx, booking.RoomID); err == nil {
		details.Room = &model.RoomSummary{
			ID:         room.ID,
			RoomNumber: room.RoomNumber,
			Type:       room.Type,
		}
	}
	if user, err := s.userRepo.FindByID(ctx, booking.UserID); err == nil {
		details.Guest = user.Summary()
	}

	return details
}
