package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/honkaku-tattoo/backend/internal/model"
)

type fakeBookingStore struct {
	artists  []model.Artist
	bookings []model.Booking
}

func (f *fakeBookingStore) GetArtistByID(ctx context.Context, id int64) (*model.Artist, error) {
	for _, a := range f.artists {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBookingStore) FirstAvailableArtist(ctx context.Context) (*model.Artist, error) {
	for _, a := range f.artists {
		if a.Status == model.ArtistStatusAvailable {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBookingStore) CreateBooking(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	created := *b
	created.ID = int64(len(f.bookings) + 1)
	f.bookings = append(f.bookings, created)
	return &created, nil
}

func (f *fakeBookingStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingStore) UpdateBookingStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return &f.bookings[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

type recordingNotifier struct {
	sent []string
}

func (r *recordingNotifier) SendBookingConfirmation(ctx context.Context, email, name string) error {
	r.sent = append(r.sent, email)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestSubmitFallsBackToFirstAvailableArtist(t *testing.T) {
	store := &fakeBookingStore{artists: []model.Artist{
		{ID: 1, Status: model.ArtistStatusInactive},
		{ID: 2, Status: model.ArtistStatusAvailable},
	}}
	notifier := &recordingNotifier{}
	svc := NewBookingService(store, notifier, testLogger())

	booking, err := svc.Submit(context.Background(), model.BookingRequest{
		Name:        "Kai",
		Email:       "kai@example.com",
		Style:       "blackwork",
		Size:        "forearm",
		Description: "geometric sleeve",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if booking.ArtistID != 2 {
		t.Fatalf("artistID = %d, want first available (2)", booking.ArtistID)
	}
	if booking.Status != model.BookingStatusPending {
		t.Fatalf("status = %q, want PENDING", booking.Status)
	}
	if booking.Concept != "blackwork\n\nforearm\n\ngeometric sleeve" {
		t.Fatalf("concept = %q", booking.Concept)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "kai@example.com" {
		t.Fatalf("confirmation not sent, sent = %v", notifier.sent)
	}
}

func TestSubmitPreferredArtist(t *testing.T) {
	store := &fakeBookingStore{artists: []model.Artist{
		{ID: 1, Status: model.ArtistStatusAvailable},
		{ID: 2, Status: model.ArtistStatusAvailable},
	}}
	svc := NewBookingService(store, nil, testLogger())

	booking, err := svc.Submit(context.Background(), model.BookingRequest{
		Name:              "Kai",
		Email:             "kai@example.com",
		PreferredArtistID: 2,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if booking.ArtistID != 2 {
		t.Fatalf("artistID = %d, want 2", booking.ArtistID)
	}
	if booking.Concept != "No description provided." {
		t.Fatalf("concept = %q", booking.Concept)
	}
}

func TestSubmitValidation(t *testing.T) {
	store := &fakeBookingStore{artists: []model.Artist{{ID: 1, Status: model.ArtistStatusAvailable}}}
	svc := NewBookingService(store, nil, testLogger())

	if _, err := svc.Submit(context.Background(), model.BookingRequest{Email: "kai@example.com"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing name: err = %v", err)
	}
	if _, err := svc.Submit(context.Background(), model.BookingRequest{Name: "Kai"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing email: err = %v", err)
	}
}

func TestSubmitNoArtistAvailable(t *testing.T) {
	svc := NewBookingService(&fakeBookingStore{}, nil, testLogger())

	_, err := svc.Submit(context.Background(), model.BookingRequest{Name: "Kai", Email: "kai@example.com"})
	if !errors.Is(err, ErrNoArtist) {
		t.Fatalf("err = %v, want ErrNoArtist", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := &fakeBookingStore{
		artists:  []model.Artist{{ID: 1, Status: model.ArtistStatusAvailable}},
		bookings: []model.Booking{{ID: 1, Status: model.BookingStatusPending}},
	}
	svc := NewBookingService(store, nil, testLogger())

	booking, err := svc.UpdateStatus(context.Background(), 1, model.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if booking.Status != model.BookingStatusConfirmed {
		t.Fatalf("status = %q", booking.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), 1, "SHIPPED"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status: err = %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 42, model.BookingStatusDeclined); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing booking: err = %v", err)
	}
}
