package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"guesthouse/internal/bookings/service"
	apperrors "guesthouse/pkg/errors"
	httputil "guesthouse/pkg/http"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/middleware"
	"guesthouse/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// actionRequest is the PATCH payload. The status field carries the
// lifecycle action verb, not a target status.
type actionRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, conflateCreateError(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	query := r.URL.Query()
	var statuses []string
	if raw := query.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				statuses = append(statuses, strings.ToUpper(trimmed))
			}
		}
	}
	guestHouseID := query.Get("guest_house_id")

	bookings, total, err := h.service.GetAll(r.Context(), actor, statuses, guestHouseID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) ApplyAction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())
	id := ps.ByName("id")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ApplyAction", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	action := strings.ToUpper(strings.TrimSpace(req.Status))
	if action == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("status action is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApplyAction", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.ApplyAction(r.Context(), actor, id, action)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApplyAction", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "ApplyAction", "operation", "WriteSuccess", "error", err)
	}
}

// conflateCreateError folds create-path failures into a 409 carrying the
// distinguishing message: validation errors, unknown or foreign rooms and
// malformed IDs all mean "this room cannot be booked as requested", and
// clients treat them uniformly as conflicts. Other errors keep their own
// status.
func conflateCreateError(err error) error {
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		return err
	}
	switch appErr.Code {
	case apperrors.CodeValidation, apperrors.CodeNotFound, apperrors.CodeInvalidInput:
		return apperrors.Conflict(appErr.Message).WithDetails(appErr.Details)
	}
	return err
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.ApplyAction)
}
