package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"guesthouse/internal/inventory/service"
	httputil "guesthouse/pkg/http"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/middleware"
	"guesthouse/pkg/model"
)

type GuestHouseHandler struct {
	service service.GuestHouseService
	log     *logger.Logger
}

func NewGuestHouseHandler(service service.GuestHouseService, log *logger.Logger) *GuestHouseHandler {
	return &GuestHouseHandler{
		service: service,
		log:     log,
	}
}

func (h *GuestHouseHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())

	var gh model.GuestHouse
	if err := json.NewDecoder(r.Body).Decode(&gh); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), actor, &gh); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, gh); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *GuestHouseHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gh, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, gh); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GuestHouseHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	houses, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, houses, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *GuestHouseHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())

	var update model.GuestHouseUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	gh, err := h.service.Update(r.Context(), actor, ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, gh); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GuestHouseHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := middleware.ActorFromContext(r.Context())

	if err := h.service.Delete(r.Context(), actor, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *GuestHouseHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *GuestHouseHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/guest-houses", h.Create)
	router.GET("/api/v1/guest-houses", h.GetAll)
	router.GET("/api/v1/guest-houses/id/:id", h.GetByID)
	router.PATCH("/api/v1/guest-houses/id/:id", h.Update)
	router.DELETE("/api/v1/guest-houses/id/:id", h.Delete)
}
