package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
	"github.com/honkaku-tattoo/backend/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Submit godoc
// @Summary Submit a booking request
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body model.BookingRequest true "Booking form"
// @Success 201 {object} model.Booking
// @Failure 400 {object} model.ErrorResponse
// @Failure 429 {object} model.RateLimitedResponse
// @Router /api/v1/bookings [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	booking, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) ListAdmin(c *gin.Context) {
	bookings, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var req model.BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	booking, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
