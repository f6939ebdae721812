package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
	"github.com/honkaku-tattoo/backend/internal/storage"
)

type UploadHandler struct {
	storage storage.Service
}

func NewUploadHandler(store storage.Service) *UploadHandler {
	return &UploadHandler{storage: store}
}

// BookingReference accepts the public booking form's reference image.
func (h *UploadHandler) BookingReference(c *gin.Context) {
	h.upload(c, storage.FolderBookingReferences)
}

// AdminUpload stores an image into one of the known admin folders
// (artist-avatars, portfolio, blog-images).
func (h *UploadHandler) AdminUpload(c *gin.Context) {
	folder := c.Param("folder")
	if !storage.IsKnownFolder(folder) || folder == storage.FolderBookingReferences {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "unknown upload folder"})
		return
	}
	h.upload(c, folder)
}

func (h *UploadHandler) upload(c *gin.Context, folder string) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Error: "file upload is not configured, please contact the studio"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "file is required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, err := storage.ValidateImage(contentType, fileHeader.Size); err != nil {
		writeUploadError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "unreadable file"})
		return
	}
	defer file.Close()

	url, err := h.storage.UploadImage(c.Request.Context(), folder, contentType, file, fileHeader.Size)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.UploadResponse{URL: url})
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidType), errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "upload failed"})
	}
}
