package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/honkaku-tattoo/backend/internal/db"
	"github.com/honkaku-tattoo/backend/internal/model"
)

type BookingStore interface {
	GetArtistByID(ctx context.Context, id int64) (*model.Artist, error)
	FirstAvailableArtist(ctx context.Context) (*model.Artist, error)
	CreateBooking(ctx context.Context, b *model.Booking) (*model.Booking, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) (*model.Booking, error)
}

// BookingNotifier sends the client a confirmation. Delivery is an
// external collaborator; failures are logged and swallowed.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, email, name string) error
}

type BookingService struct {
	store    BookingStore
	notifier BookingNotifier
	logger   *logrus.Logger
}

func NewBookingService(store BookingStore, notifier BookingNotifier, logger *logrus.Logger) *BookingService {
	return &BookingService{store: store, notifier: notifier, logger: logger}
}

// Submit files a public booking request. When no preferred artist is
// named, the first available one by display order takes it.
func (s *BookingService) Submit(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	artist, err := s.resolveArtist(ctx, req.PreferredArtistID)
	if err != nil {
		return nil, err
	}

	concept := assembleConcept(req.Style, req.Size, req.Description)
	if concept == "" {
		concept = "No description provided."
	}

	booking := &model.Booking{
		ArtistID:     artist.ID,
		ClientName:   name,
		ClientEmail:  email,
		ClientPhone:  nullable(req.Phone),
		Concept:      concept,
		Placement:    nullable(req.Placement),
		ReferenceURL: nullable(req.ReferenceURL),
		Status:       model.BookingStatusPending,
	}

	created, err := s.store.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, email, name); err != nil {
			s.logger.WithError(err).Warn("booking confirmation email failed")
		}
	}

	return created, nil
}

func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.store.ListBookings(ctx)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	switch status {
	case model.BookingStatusPending, model.BookingStatusConfirmed, model.BookingStatusDeclined, model.BookingStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	booking, err := s.store.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) resolveArtist(ctx context.Context, preferredID int64) (*model.Artist, error) {
	if preferredID != 0 {
		artist, err := s.store.GetArtistByID(ctx, preferredID)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, ErrNoArtist
			}
			return nil, err
		}
		return artist, nil
	}

	artist, err := s.store.FirstAvailableArtist(ctx)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNoArtist
		}
		return nil, err
	}
	return artist, nil
}

func assembleConcept(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n\n")
}
