package service

import (
	"context"
	"errors"
	"sync"

	bookingsrepo "guesthouse/internal/bookings/repository"
	inventoryerrors "guesthouse/internal/inventory/errors"
	"guesthouse/internal/inventory/repository"
	"guesthouse/internal/inventory/validator"
	"guesthouse/pkg/config"
	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/model"
	"guesthouse/pkg/sanitizer"
)

type GuestHouseService interface {
	Create(ctx context.Context, actor *model.Actor, gh *model.GuestHouse) error
	GetByID(ctx context.Context, id string) (*model.GuestHouse, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.GuestHouse, int64, error)
	Update(ctx context.Context, actor *model.Actor, id string, update *model.GuestHouseUpdate) (*model.GuestHouse, error)
	Delete(ctx context.Context, actor *model.Actor, id string) error
}

type guestHouseService struct {
	repo        repository.GuestHouseRepository
	roomRepo    repository.RoomRepository
	bookingRepo bookingsrepo.BookingRepository
	validator   *validator.InventoryValidator
	cfg         *config.Config
}

func NewGuestHouseService(
	repo repository.GuestHouseRepository,
	roomRepo repository.RoomRepository,
	bookingRepo bookingsrepo.BookingRepository,
	inventoryValidator *validator.InventoryValidator,
	cfg *config.Config,
) GuestHouseService {
	return &guestHouseService{
		repo:        repo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		validator:   inventoryValidator,
		cfg:         cfg,
	}
}

func (s *guestHouseService) Create(ctx context.Context, actor *model.Actor, gh *model.GuestHouse) error {
	if !actor.CanManageInventory() {
		return apperrors.Forbidden("You are not allowed to manage guest houses")
	}

	s.sanitize(gh)
	gh.IsActive = true
	gh.CreatedBy = actor.ID

	if err := s.validator.ValidateGuestHouse(gh); err != nil {
		s.cfg.Log.Warn("Guest house validation failed", "error", err)
		return apperrors.Validation("Guest house validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, gh); err != nil {
		s.cfg.Log.Error("Failed to create guest house", "name", gh.Name, "error", err)
		return apperrors.Internal("Failed to create guest house", err)
	}

	s.cfg.Log.Info("Guest house created successfully", "id", gh.ID, "name", gh.Name)
	return nil
}

func (s *guestHouseService) GetByID(ctx context.Context, id string) (*model.GuestHouse, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Guest house ID cannot be empty")
	}

	gh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventoryerrors.ErrGuestHouseNotFound) {
			return nil, apperrors.NotFoundWithID("GuestHouse", id)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid guest house ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve guest house", err)
	}

	return gh, nil
}

func (s *guestHouseService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.GuestHouse, int64, error) {
	var count int64
	var houses []*model.GuestHouse
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountActive(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count guest houses", "error", errCount)
			errCount = apperrors.Internal("Failed to count guest houses", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		houses, errFind = s.repo.FindAllActive(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list guest houses", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve guest houses", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return houses, count, nil
}

func (s *guestHouseService) Update(ctx context.Context, actor *model.Actor, id string, update *model.GuestHouseUpdate) (*model.GuestHouse, error) {
	if !actor.CanManageInventory() {
		return nil, apperrors.Forbidden("You are not allowed to manage guest houses")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Guest house ID cannot be empty")
	}

	update.Name = sanitizer.NormalizeName(update.Name)
	update.Location = sanitizer.TrimAndNormalize(update.Location)
	update.Address = sanitizer.TrimAndNormalize(update.Address)

	if err := s.validator.ValidateGuestHouseUpdate(update); err != nil {
		s.cfg.Log.Warn("Guest house update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Guest house validation failed", map[string]any{"error": err.Error()})
	}

	gh, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, inventoryerrors.ErrGuestHouseNotFound) {
			return nil, apperrors.NotFoundWithID("GuestHouse", id)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid guest house ID format")
		}
		s.cfg.Log.Error("Failed to update guest house", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update guest house", err)
	}

	s.cfg.Log.Info("Guest house updated successfully", "id", id)
	return gh, nil
}

// Delete soft-deletes a guest house, refused while any booking references
// it. Deactivation cascades to its rooms.
func (s *guestHouseService) Delete(ctx context.Context, actor *model.Actor, id string) error {
	if !actor.CanDeleteInventory() {
		return apperrors.Forbidden("You are not allowed to delete guest houses")
	}
	if id == "" {
		return apperrors.InvalidInput("Guest house ID cannot be empty")
	}

	bookingCount, err := s.bookingRepo.Count(ctx, bookingsrepo.ListFilter{GuestHouseID: id})
	if err != nil {
		return apperrors.Internal("Failed to count guest house bookings", err)
	}
	if bookingCount > 0 {
		return apperrors.Conflict("Guest house has bookings and cannot be deleted")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, inventoryerrors.ErrGuestHouseNotFound) {
			return apperrors.NotFoundWithID("GuestHouse", id)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid guest house ID format")
		}
		s.cfg.Log.Error("Failed to delete guest house", "id", id, "error", err)
		return apperrors.Internal("Failed to delete guest house", err)
	}

	if err := s.roomRepo.DeactivateByGuestHouse(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to deactivate rooms of deleted guest house", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate guest house rooms", err)
	}

	s.cfg.Log.Info("Guest house deleted successfully", "id", id)
	return nil
}

func (s *guestHouseService) sanitize(gh *model.GuestHouse) {
	gh.Name = sanitizer.NormalizeName(gh.Name)
	gh.Location = sanitizer.TrimAndNormalize(gh.Location)
	gh.Address = sanitizer.TrimAndNormalize(gh.Address)
}
