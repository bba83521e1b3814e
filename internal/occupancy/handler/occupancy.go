package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"guesthouse/internal/occupancy/service"
	apperrors "guesthouse/pkg/errors"
	httputil "guesthouse/pkg/http"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/middleware"
)

type OccupancyHandler struct {
	service service.OccupancyService
	log     *logger.Logger
}

func NewOccupancyHandler(service service.OccupancyService, log *logger.Logger) *OccupancyHandler {
	return &OccupancyHandler{
		service: service,
		log:     log,
	}
}

func (h *OccupancyHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	roomID := query.Get("room_id")

	from, err := httputil.ExtractTime(r, "from")
	if err == nil && from == nil {
		err = apperrors.InvalidInput("from is required")
	}
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	to, err := httputil.ExtractTime(r, "to")
	if err == nil && to == nil {
		err = apperrors.InvalidInput("to is required")
	}
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	availability, err := h.service.Availability(r.Context(), roomID, *from, *to)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OccupancyHandler) RoomsStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	guestHouseID := r.URL.Query().Get("guest_house_id")

	stats, err := h.service.RoomsStats(r.Context(), guestHouseID)
	if err != nil {
		h.writeError(w, "RoomsStats", err)
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "RoomsStats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OccupancyHandler) GuestHouseStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.GuestHouseStats(r.Context())
	if err != nil {
		h.writeError(w, "GuestHouseStats", err)
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "GuestHouseStats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OccupancyHandler) DashboardStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())

	stats, err := h.service.DashboardStats(r.Context(), actor)
	if err != nil {
		h.writeError(w, "DashboardStats", err)
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "DashboardStats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OccupancyHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *OccupancyHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.Availability)
	router.GET("/api/v1/rooms-stats", h.RoomsStats)
	router.GET("/api/v1/guest-house-stats", h.GuestHouseStats)
	router.GET("/api/v1/dashboard-stats", h.DashboardStats)
}
