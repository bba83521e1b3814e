package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "guesthouse/pkg/errors"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/middleware"
	"guesthouse/pkg/model"
)

type mockBookingService struct {
	createFunc      func(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error)
	getByIDFunc     func(ctx context.Context, actor *model.Actor, id string) (*model.BookingDetails, error)
	getAllFunc      func(ctx context.Context, actor *model.Actor, statuses []string, guestHouseID string, limit int, offset int64) ([]*model.BookingDetails, int64, error)
	applyActionFunc func(ctx context.Context, actor *model.Actor, id, action string) (*model.BookingDetails, error)
}

func (m *mockBookingService) Create(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, actor, req)
	}
	return &model.BookingDetails{}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, actor *model.Actor, id string) (*model.BookingDetails, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, actor, id)
	}
	return &model.BookingDetails{}, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, actor *model.Actor, statuses []string, guestHouseID string, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, actor, statuses, guestHouseID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockBookingService) ApplyAction(ctx context.Context, actor *model.Actor, id, action string) (*model.BookingDetails, error) {
	if m.applyActionFunc != nil {
		return m.applyActionFunc(ctx, actor, id, action)
	}
	return &model.BookingDetails{}, nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func createRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	actor := &model.Actor{ID: "507f1f77bcf86cd799439099", Role: model.RoleCustomer}
	return r.WithContext(context.WithValue(r.Context(), middleware.ActorKey, actor))
}

func postBooking(t *testing.T, svc *mockBookingService) *httptest.ResponseRecorder {
	t.Helper()
	h := NewBookingHandler(svc, testLog())
	w := httptest.NewRecorder()
	h.Create(w, createRequest(t, `{"guest_house_id":"a","room_id":"b"}`), nil)
	return w
}

func TestCreate_RoomUnavailableIsConflict(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
			return nil, apperrors.NotFoundWithID("Room", "507f1f77bcf86cd799439012")
		},
	}

	w := postBooking(t, svc)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for an unavailable room, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Room") {
		t.Errorf("conflict must keep the distinguishing message, got %s", w.Body.String())
	}
}

func TestCreate_ValidationIsConflict(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
			return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": "check_out_date must be after check_in_date"})
		},
	}

	if w := postBooking(t, svc); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for create-path validation failure, got %d", w.Code)
	}
}

func TestCreate_MalformedIDIsConflict(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		},
	}

	if w := postBooking(t, svc); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for malformed room ID on create, got %d", w.Code)
	}
}

func TestCreate_ForbiddenKeepsStatus(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
			return nil, apperrors.Forbidden("You are not allowed to manage bookings")
		},
	}

	if w := postBooking(t, svc); w.Code != http.StatusForbidden {
		t.Errorf("non-availability errors must keep their status, got %d", w.Code)
	}
}

func TestCreate_Success(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, actor *model.Actor, req *model.BookingRequest) (*model.BookingDetails, error) {
			return &model.BookingDetails{
				Booking:    model.Booking{ID: "507f1f77bcf86cd799439014", Status: model.StatusPending},
				GuestHouse: &model.GuestHouseSummary{ID: "507f1f77bcf86cd799439011", Name: "Lakeview"},
			}, nil
		},
	}

	w := postBooking(t, svc)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var resp struct {
		Data model.BookingDetails `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != model.StatusPending {
		t.Errorf("expected PENDING, got %s", resp.Data.Status)
	}
	if resp.Data.GuestHouse == nil || resp.Data.GuestHouse.Name != "Lakeview" {
		t.Errorf("response must carry the resolved guest house summary, got %+v", resp.Data.GuestHouse)
	}
}

func TestApplyAction_MissingActionRejected(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, testLog())

	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/507f1f77bcf86cd799439014", strings.NewReader(`{"status":""}`))
	actor := &model.Actor{ID: "507f1f77bcf86cd799439099", Role: model.RoleAdmin}
	r = r.WithContext(context.WithValue(r.Context(), middleware.ActorKey, actor))

	w := httptest.NewRecorder()
	h.ApplyAction(w, r, httprouter.Params{{Key: "id", Value: "507f1f77bcf86cd799439014"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing action, got %d", w.Code)
	}
}
