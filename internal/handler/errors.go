package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
	"github.com/honkaku-tattoo/backend/internal/service"
)

// writeServiceError maps service sentinels onto HTTP statuses without
// leaking internal error text.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNoArtist):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: "no artists available for booking, please contact us directly"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
	}
}
