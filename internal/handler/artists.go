package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
	"github.com/honkaku-tattoo/backend/internal/service"
)

type ArtistHandler struct {
	svc *service.ArtistService
}

func NewArtistHandler(svc *service.ArtistService) *ArtistHandler {
	return &ArtistHandler{svc: svc}
}

// ListPublic returns only available artists, in display order.
func (h *ArtistHandler) ListPublic(c *gin.Context) {
	artists, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (h *ArtistHandler) GetBySlug(c *gin.Context) {
	artist, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

// ListAdmin includes inactive artists for the admin panel.
func (h *ArtistHandler) ListAdmin(c *gin.Context) {
	artists, err := h.svc.List(c.Request.Context(), true)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (h *ArtistHandler) Create(c *gin.Context) {
	var req model.ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	artist, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artist)
}

func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var req model.ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	artist, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}

// pathID parses the :id segment, writing the 400 itself on failure.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid id"})
		if err == nil {
			err = strconv.ErrSyntax
		}
		return 0, err
	}
	return id, nil
}
