package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
)

// Ping is the health-check endpoint.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}
