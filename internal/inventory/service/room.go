package service

import (
	"context"
	"errors"

	inventoryerrors "guesthouse/internal/inventory/errors"
	"guesthouse/internal/inventory/repository"
	"guesthouse/internal/inventory/validator"
	"guesthouse/pkg/config"
	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/model"
	"guesthouse/pkg/sanitizer"
)

type RoomService interface {
	Create(ctx context.Context, actor *model.Actor, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetByGuestHouse(ctx context.Context, guestHouseID string) ([]*model.Room, error)
	Update(ctx context.Context, actor *model.Actor, id string, update *model.RoomUpdate) (*model.Room, error)
	Delete(ctx context.Context, actor *model.Actor, id string) error
}

type roomService struct {
	repo           repository.RoomRepository
	guestHouseRepo repository.GuestHouseRepository
	validator      *validator.InventoryValidator
	cfg            *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	guestHouseRepo repository.GuestHouseRepository,
	inventoryValidator *validator.InventoryValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:           repo,
		guestHouseRepo: guestHouseRepo,
		validator:      inventoryValidator,
		cfg:            cfg,
	}
}

func (s *roomService) Create(ctx context.Context, actor *model.Actor, room *model.Room) error {
	if !actor.CanManageInventory() {
		return apperrors.Forbidden("You are not allowed to manage rooms")
	}

	s.sanitize(room)
	room.IsActive = true
	if room.Status == "" {
		room.Status = model.RoomStatusActive
	}

	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.guestHouseRepo.FindByID(ctx, room.GuestHouseID); err != nil {
		if errors.Is(err, inventoryerrors.ErrGuestHouseNotFound) {
			return apperrors.NotFoundWithID("GuestHouse", room.GuestHouseID)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid guest house ID format")
		}
		return apperrors.Internal("Failed to verify guest house", err)
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, inventoryerrors.ErrDuplicateRoom) {
			return apperrors.Conflict("A room with this number already exists in the guest house")
		}
		s.cfg.Log.Error("Failed to create room", "guest_house_id", room.GuestHouseID, "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully", "id", room.ID, "guest_house_id", room.GuestHouseID, "room_number", room.RoomNumber)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventoryerrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) GetByGuestHouse(ctx context.Context, guestHouseID string) ([]*model.Room, error) {
	if guestHouseID == "" {
		return nil, apperrors.InvalidInput("guest_house_id is required")
	}

	rooms, err := s.repo.FindActiveByGuestHouse(ctx, guestHouseID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}

	return rooms, nil
}

func (s *roomService) Update(ctx context.Context, actor *model.Actor, id string, update *model.RoomUpdate) (*model.Room, error) {
	if !actor.CanManageInventory() {
		return nil, apperrors.Forbidden("You are not allowed to manage rooms")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	update.RoomNumber = sanitizer.NormalizeRoomNumber(update.RoomNumber)
	if update.Amenities != nil {
		normalized := sanitizer.NormalizeSlice(*update.Amenities)
		update.Amenities = &normalized
	}

	if err := s.validator.ValidateRoomUpdate(update); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	room, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, inventoryerrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		if errors.Is(err, inventoryerrors.ErrDuplicateRoom) {
			return nil, apperrors.Conflict("A room with this number already exists in the guest house")
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id)
	return room, nil
}

func (s *roomService) Delete(ctx context.Context, actor *model.Actor, id string) error {
	if !actor.CanDeleteInventory() {
		return apperrors.Forbidden("You are not allowed to delete rooms")
	}
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, inventoryerrors.ErrRoomNotFound) {
			return apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, inventoryerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid room ID format")
		}
		s.cfg.Log.Error("Failed to delete room", "id", id, "error", err)
		return apperrors.Internal("Failed to delete room", err)
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id)
	return nil
}

func (s *roomService) sanitize(room *model.Room) {
	room.RoomNumber = sanitizer.NormalizeRoomNumber(room.RoomNumber)
	room.Amenities = sanitizer.NormalizeSlice(room.Amenities)
}
