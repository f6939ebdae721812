package storage

import (
	"context"
	"errors"
	"io"
)

// Upload folders, one per image surface of the site.
const (
	FolderArtistAvatars     = "artist-avatars"
	FolderPortfolio         = "portfolio"
	FolderBlogImages        = "blog-images"
	FolderBookingReferences = "booking-references"
)

// MaxImageBytes bounds a single upload.
const MaxImageBytes = 10 << 20

var (
	ErrInvalidType = errors.New("invalid file type, allowed: JPEG, PNG, WebP, GIF")
	ErrTooLarge    = errors.New("file too large, maximum 10MB")
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// Service uploads validated image bytes and returns a public URL.
type Service interface {
	UploadImage(ctx context.Context, folder, contentType string, body io.Reader, size int64) (string, error)
}

// ValidateImage checks content type and size before any bytes leave the
// process. Returns the canonical file extension for the type.
func ValidateImage(contentType string, size int64) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrInvalidType
	}
	if size > MaxImageBytes {
		return "", ErrTooLarge
	}
	return ext, nil
}

func IsKnownFolder(folder string) bool {
	switch folder {
	case FolderArtistAvatars, FolderPortfolio, FolderBlogImages, FolderBookingReferences:
		return true
	}
	return false
}
