package db

import (
	"context"

	"github.com/honkaku-tattoo/backend/internal/model"
)

func (db *Postgres) EnsureBookingSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			artist_id BIGINT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			client_name TEXT NOT NULL,
			client_email TEXT NOT NULL,
			client_phone TEXT,
			concept TEXT NOT NULL,
			placement TEXT,
			reference_url TEXT,
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS bookings_status_idx ON bookings(status, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const bookingColumns = `id, artist_id, client_name, client_email, client_phone, concept, placement, reference_url, status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.ArtistID,
		&b.ClientName,
		&b.ClientEmail,
		&b.ClientPhone,
		&b.Concept,
		&b.Placement,
		&b.ReferenceURL,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *Postgres) ListBookings(ctx context.Context) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *booking)
	}
	return list, rows.Err()
}

func (db *Postgres) CreateBooking(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (artist_id, client_name, client_email, client_phone, concept, placement, reference_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + bookingColumns
	return scanBooking(db.Pool.QueryRow(ctx, query,
		b.ArtistID, b.ClientName, b.ClientEmail, b.ClientPhone, b.Concept, b.Placement, b.ReferenceURL, b.Status))
}

func (db *Postgres) UpdateBookingStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		RETURNING ` + bookingColumns
	return scanBooking(db.Pool.QueryRow(ctx, query, id, status))
}
