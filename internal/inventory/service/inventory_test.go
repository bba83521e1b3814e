package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingsrepo "guesthouse/internal/bookings/repository"
	inventoryerrors "guesthouse/internal/inventory/errors"
	"guesthouse/internal/inventory/validator"
	"guesthouse/pkg/config"
	mongotx "guesthouse/pkg/db/mongo"
	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/model"
)

const (
	testGuestHouseID = "507f1f77bcf86cd799439031"
	testRoomID       = "507f1f77bcf86cd799439032"
	testAdminID      = "507f1f77bcf86cd799439033"
)

type mockRoomRepository struct {
	createFunc                 func(ctx context.Context, room *model.Room) error
	findByIDFunc               func(ctx context.Context, id string) (*model.Room, error)
	updateFunc                 func(ctx context.Context, id string, update *model.RoomUpdate) (*model.Room, error)
	deactivateFunc             func(ctx context.Context, id string) error
	deactivateByGuestHouseFunc func(ctx context.Context, guestHouseID string) error
	deactivatedGuestHouses     []string
	capturedRoom               *model.Room
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	m.capturedRoom = room
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = testRoomID
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, inventoryerrors.ErrRoomNotFound
}

func (m *mockRoomRepository) FindActiveByGuestHouse(ctx context.Context, guestHouseID string) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepository) FindAllActive(ctx context.Context) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, update *model.RoomUpdate) (*model.Room, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, update)
	}
	return nil, inventoryerrors.ErrRoomNotFound
}

func (m *mockRoomRepository) Deactivate(ctx context.Context, id string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, id)
	}
	return nil
}

func (m *mockRoomRepository) DeactivateByGuestHouse(ctx context.Context, guestHouseID string) error {
	m.deactivatedGuestHouses = append(m.deactivatedGuestHouses, guestHouseID)
	if m.deactivateByGuestHouseFunc != nil {
		return m.deactivateByGuestHouseFunc(ctx, guestHouseID)
	}
	return nil
}

type mockGuestHouseRepository struct {
	findByIDFunc   func(ctx context.Context, id string) (*model.GuestHouse, error)
	deactivateFunc func(ctx context.Context, id string) error
	deactivated    []string
}

func (m *mockGuestHouseRepository) Create(ctx context.Context, gh *model.GuestHouse) error {
	gh.ID = testGuestHouseID
	return nil
}

func (m *mockGuestHouseRepository) FindByID(ctx context.Context, id string) (*model.GuestHouse, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.GuestHouse{ID: testGuestHouseID, Name: "Lakeview", IsActive: true}, nil
}

func (m *mockGuestHouseRepository) FindAllActive(ctx context.Context, limit int, offset int64) ([]*model.GuestHouse, error) {
	return nil, nil
}

func (m *mockGuestHouseRepository) CountActive(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockGuestHouseRepository) Update(ctx context.Context, id string, update *model.GuestHouseUpdate) (*model.GuestHouse, error) {
	return nil, nil
}

func (m *mockGuestHouseRepository) Deactivate(ctx context.Context, id string) error {
	m.deactivated = append(m.deactivated, id)
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, id)
	}
	return nil
}

type mockBookingRepository struct {
	countFunc func(ctx context.Context, filter bookingsrepo.ListFilter) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, filter bookingsrepo.ListFilter, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) Count(ctx context.Context, filter bookingsrepo.ListFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindOverlapping(ctx context.Context, roomID string, from, to time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindOccupying(ctx context.Context, guestHouseID string, windowStart, windowEnd time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func superAdminActor() *model.Actor {
	return &model.Actor{ID: testAdminID, Name: "Root", Email: "root@example.com", Role: model.RoleSuperAdmin}
}

func adminActor() *model.Actor {
	return &model.Actor{ID: testAdminID, Name: "Ops", Email: "ops@example.com", Role: model.RoleAdmin}
}

func customerActor() *model.Actor {
	return &model.Actor{ID: testAdminID, Name: "Guest", Email: "guest@example.com", Role: model.RoleCustomer}
}

func newRoomService(t *testing.T) (RoomService, *mockRoomRepository, *mockGuestHouseRepository) {
	t.Helper()
	cfg := testConfig()
	rooms := &mockRoomRepository{}
	houses := &mockGuestHouseRepository{}
	svc := NewRoomService(rooms, houses, validator.NewInventoryValidator(cfg.Log), cfg)
	return svc, rooms, houses
}

func newGuestHouseService(t *testing.T, bookings *mockBookingRepository) (GuestHouseService, *mockRoomRepository, *mockGuestHouseRepository) {
	t.Helper()
	cfg := testConfig()
	rooms := &mockRoomRepository{}
	houses := &mockGuestHouseRepository{}
	svc := NewGuestHouseService(houses, rooms, bookings, validator.NewInventoryValidator(cfg.Log), cfg)
	return svc, rooms, houses
}

func TestRoomCreate_DefaultsAndDuplicate(t *testing.T) {
	svc, rooms, _ := newRoomService(t)

	room := &model.Room{
		GuestHouseID: testGuestHouseID,
		RoomNumber:   " 101 ",
		Type:         model.RoomTypeSingle,
		Capacity:     1,
	}
	if err := svc.Create(context.Background(), adminActor(), room); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !room.IsActive || room.Status != model.RoomStatusActive {
		t.Errorf("expected active defaults, got active=%v status=%s", room.IsActive, room.Status)
	}
	if room.RoomNumber != "101" {
		t.Errorf("room number must be normalized, got %q", room.RoomNumber)
	}

	rooms.createFunc = func(ctx context.Context, r *model.Room) error {
		return inventoryerrors.ErrDuplicateRoom
	}
	err := svc.Create(context.Background(), adminActor(), &model.Room{
		GuestHouseID: testGuestHouseID,
		RoomNumber:   "101",
		Type:         model.RoomTypeSingle,
		Capacity:     1,
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT for duplicate room number, got %v", err)
	}
}

func TestRoomCreate_CustomerForbidden(t *testing.T) {
	svc, rooms, _ := newRoomService(t)

	err := svc.Create(context.Background(), customerActor(), &model.Room{
		GuestHouseID: testGuestHouseID,
		RoomNumber:   "101",
		Type:         model.RoomTypeSingle,
		Capacity:     1,
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}
	if rooms.capturedRoom != nil {
		t.Error("forbidden requests must not reach storage")
	}
}

func TestRoomCreate_UnknownGuestHouse(t *testing.T) {
	svc, _, houses := newRoomService(t)

	houses.findByIDFunc = func(ctx context.Context, id string) (*model.GuestHouse, error) {
		return nil, inventoryerrors.ErrGuestHouseNotFound
	}
	err := svc.Create(context.Background(), adminActor(), &model.Room{
		GuestHouseID: testGuestHouseID,
		RoomNumber:   "101",
		Type:         model.RoomTypeSingle,
		Capacity:     1,
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRoomDelete_RequiresSuperAdmin(t *testing.T) {
	svc, _, _ := newRoomService(t)

	err := svc.Delete(context.Background(), adminActor(), testRoomID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected FORBIDDEN for admin delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), superAdminActor(), testRoomID); err != nil {
		t.Errorf("expected super admin delete to succeed, got %v", err)
	}
}

func TestGuestHouseDelete_BlockedByBookings(t *testing.T) {
	bookings := &mockBookingRepository{
		countFunc: func(ctx context.Context, filter bookingsrepo.ListFilter) (int64, error) {
			if filter.GuestHouseID != testGuestHouseID {
				t.Errorf("count must be scoped to the guest house, got %q", filter.GuestHouseID)
			}
			return 3, nil
		},
	}
	svc, _, houses := newGuestHouseService(t, bookings)

	err := svc.Delete(context.Background(), superAdminActor(), testGuestHouseID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT when bookings exist, got %v", err)
	}
	if len(houses.deactivated) != 0 {
		t.Error("guest house must not be deactivated while bookings exist")
	}
}

func TestGuestHouseDelete_CascadesToRooms(t *testing.T) {
	svc, rooms, houses := newGuestHouseService(t, &mockBookingRepository{})

	if err := svc.Delete(context.Background(), superAdminActor(), testGuestHouseID); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(houses.deactivated) != 1 || houses.deactivated[0] != testGuestHouseID {
		t.Errorf("expected guest house deactivation, got %v", houses.deactivated)
	}
	if len(rooms.deactivatedGuestHouses) != 1 || rooms.deactivatedGuestHouses[0] != testGuestHouseID {
		t.Errorf("expected room cascade, got %v", rooms.deactivatedGuestHouses)
	}
}

func TestGuestHouseCreate_StampsCreator(t *testing.T) {
	svc, _, _ := newGuestHouseService(t, &mockBookingRepository{})

	gh := &model.GuestHouse{Name: "Lakeview", Category: model.CategoryStandard}
	if err := svc.Create(context.Background(), adminActor(), gh); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gh.CreatedBy != testAdminID {
		t.Errorf("expected created_by %s, got %s", testAdminID, gh.CreatedBy)
	}
	if !gh.IsActive {
		t.Error("new guest houses must start active")
	}
}
