package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/application/service"
)

// ReservationHandler exposes resources and their bookings.
type ReservationHandler struct {
	reservationService service.ReservationAppService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(reservationService service.ReservationAppService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

func (h *ReservationHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if !bindJSON(c, &req) {
		return
	}
	resource, err := h.reservationService.CreateResource(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, resource)
}

// Reserve books a resource for the authenticated user.
func (h *ReservationHandler) Reserve(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	var req dto.ReserveRequest
	if !bindJSON(c, &req) {
		return
	}
	reservation, err := h.reservationService.Reserve(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	reservation, err := h.reservationService.Confirm(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, reservation)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	reservation, err := h.reservationService.Cancel(c.Request.Context(), id, claims)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, reservation)
}

func (h *ReservationHandler) ListForResource(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	reservations, err := h.reservationService.ListForResource(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	respond(c, http.StatusOK, reservations)
}
