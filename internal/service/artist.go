package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/honkaku-tattoo/backend/internal/db"
	"github.com/honkaku-tattoo/backend/internal/model"
)

type ArtistStore interface {
	ListArtists(ctx context.Context, includeInactive bool) ([]model.Artist, error)
	GetArtistBySlug(ctx context.Context, slug string) (*model.Artist, error)
	GetArtistByID(ctx context.Context, id int64) (*model.Artist, error)
	CreateArtist(ctx context.Context, a *model.Artist) (*model.Artist, error)
	UpdateArtist(ctx context.Context, a *model.Artist) (*model.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

type ArtistService struct {
	store ArtistStore
}

func NewArtistService(store ArtistStore) *ArtistService {
	return &ArtistService{store: store}
}

func (s *ArtistService) List(ctx context.Context, includeInactive bool) ([]model.Artist, error) {
	return s.store.ListArtists(ctx, includeInactive)
}

func (s *ArtistService) GetBySlug(ctx context.Context, slug string) (*model.Artist, error) {
	artist, err := s.store.GetArtistBySlug(ctx, slug)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (s *ArtistService) Create(ctx context.Context, req model.ArtistRequest) (*model.Artist, error) {
	artist, err := artistFromRequest(0, req)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateArtist(ctx, artist)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q", ErrConflict, artist.Slug)
		}
		return nil, err
	}
	return created, nil
}

func (s *ArtistService) Update(ctx context.Context, id int64, req model.ArtistRequest) (*model.Artist, error) {
	artist, err := artistFromRequest(id, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateArtist(ctx, artist)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q", ErrConflict, artist.Slug)
		}
		return nil, err
	}
	return updated, nil
}

func (s *ArtistService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteArtist(ctx, id)
}

func artistFromRequest(id int64, req model.ArtistRequest) (*model.Artist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	var instagramURL *string
	if handle := strings.TrimPrefix(strings.TrimSpace(req.IGHandle), "@"); handle != "" {
		url := "https://instagram.com/" + handle
		instagramURL = &url
	}

	status := model.ArtistStatusInactive
	if req.IsActive {
		status = model.ArtistStatusAvailable
	}

	return &model.Artist{
		ID:           id,
		Slug:         slug,
		Name:         name,
		Bio:          nullable(req.Bio),
		Specialty:    nullable(req.Specialty),
		InstagramURL: instagramURL,
		AvatarURL:    nullable(req.AvatarURL),
		SortOrder:    req.SortOrder,
		Status:       status,
	}, nil
}
