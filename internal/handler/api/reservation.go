package api

import (
	"errors"
	"net/http"

	reqdto "slot-reservation/internal/handler/dto/request"
	resdto "slot-reservation/internal/handler/dto/response"
	"slot-reservation/internal/handler/httperr"
	"slot-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservations usecase.ReservationUseCase
	queue        usecase.ReservationQueue
	monitor      *usecase.LoadMonitor
}

func NewReservationHandler(
	reservations usecase.ReservationUseCase,
	queue usecase.ReservationQueue,
	monitor *usecase.LoadMonitor,
) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		queue:        queue,
		monitor:      monitor,
	}
}

// Reserve books the nearest available slot. Under high load the request is
// deferred to the queue and answered with 202 and a pollable request id.
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	h.monitor.Begin()
	defer h.monitor.End()

	if h.monitor.ShouldQueue() {
		h.reserveQueued(c, req.Email)
		return
	}
	h.reserveDirect(c, req.Email)
}

func (h *ReservationHandler) reserveQueued(c *gin.Context, email string) {
	requestID, err := h.queue.Enqueue(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateInQueue) {
			httperr.AbortWithError(c, http.StatusConflict, err, "A reservation request for this email is already in queue")
			return
		}
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable")
		return
	}

	status, err := h.queue.Status(c.Request.Context(), requestID)
	if err != nil {
		status = string(usecase.StatusQueued)
	}
	c.JSON(http.StatusAccepted, resdto.ReserveResponse{RequestID: requestID, Status: status})
}

func (h *ReservationHandler) reserveDirect(c *gin.Context, email string) {
	view, err := h.reservations.Reserve(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "User not found")
		case errors.Is(err, usecase.ErrDuplicateActiveReservation):
			httperr.AbortWithError(c, http.StatusConflict, err, "A reservation already exists for this user")
		case errors.Is(err, usecase.ErrNoSlotAvailable):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No available time slots found")
		case errors.Is(err, usecase.ErrCapacityExceeded):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "System is currently at full capacity, please try again later")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// Status polls the outcome of a queued reservation request.
func (h *ReservationHandler) Status(c *gin.Context) {
	requestID := c.Param("requestId")

	status, err := h.queue.Status(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, usecase.ErrStatusNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.StatusResponse{RequestID: requestID, Status: status})
}

// Cancel deletes a committed reservation and frees its slot.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	if err := h.reservations.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}
