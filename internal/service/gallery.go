package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/honkaku-tattoo/backend/internal/db"
	"github.com/honkaku-tattoo/backend/internal/model"
)

type GalleryStore interface {
	ListPortfolioImages(ctx context.Context, artistID int64) ([]model.PortfolioImage, error)
	CreatePortfolioImage(ctx context.Context, img *model.PortfolioImage) (*model.PortfolioImage, error)
	UpdatePortfolioImage(ctx context.Context, img *model.PortfolioImage) (*model.PortfolioImage, error)
	DeletePortfolioImage(ctx context.Context, id int64) error
}

type GalleryService struct {
	store GalleryStore
}

func NewGalleryService(store GalleryStore) *GalleryService {
	return &GalleryService{store: store}
}

func (s *GalleryService) List(ctx context.Context, artistID int64) ([]model.PortfolioImage, error) {
	return s.store.ListPortfolioImages(ctx, artistID)
}

func (s *GalleryService) Create(ctx context.Context, req model.PortfolioImageRequest) (*model.PortfolioImage, error) {
	img, err := imageFromRequest(0, req)
	if err != nil {
		return nil, err
	}
	return s.store.CreatePortfolioImage(ctx, img)
}

func (s *GalleryService) Update(ctx context.Context, id int64, req model.PortfolioImageRequest) (*model.PortfolioImage, error) {
	img, err := imageFromRequest(id, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdatePortfolioImage(ctx, img)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	return s.store.DeletePortfolioImage(ctx, id)
}

func imageFromRequest(id int64, req model.PortfolioImageRequest) (*model.PortfolioImage, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: image url is required", ErrInvalidInput)
	}
	if req.ArtistID == 0 {
		return nil, fmt.Errorf("%w: artist is required", ErrInvalidInput)
	}

	altText := strings.TrimSpace(req.AltText)
	if altText == "" {
		altText = "Artwork"
	}

	return &model.PortfolioImage{
		ID:         id,
		ArtistID:   req.ArtistID,
		URL:        url,
		Title:      nullable(req.Title),
		AltText:    altText,
		Tags:       parseTags(req.Tags),
		SortOrder:  req.SortOrder,
		IsFeatured: req.IsFeatured,
	}, nil
}

func parseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
