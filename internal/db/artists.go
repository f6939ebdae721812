package db

import (
	"context"

	"github.com/honkaku-tattoo/backend/internal/model"
)

func (db *Postgres) EnsureArtistSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS artists (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			bio TEXT,
			specialty TEXT,
			instagram_url TEXT,
			avatar_url TEXT,
			sort_order INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'AVAILABLE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS artists_status_sort_idx ON artists(status, sort_order)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const artistColumns = `id, slug, name, bio, specialty, instagram_url, avatar_url, sort_order, status, created_at, updated_at`

func scanArtist(row interface{ Scan(...any) error }) (*model.Artist, error) {
	var a model.Artist
	err := row.Scan(
		&a.ID,
		&a.Slug,
		&a.Name,
		&a.Bio,
		&a.Specialty,
		&a.InstagramURL,
		&a.AvatarURL,
		&a.SortOrder,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArtists returns every artist when includeInactive is set, otherwise
// only AVAILABLE ones, ordered for display.
func (db *Postgres) ListArtists(ctx context.Context, includeInactive bool) ([]model.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists`
	if !includeInactive {
		query += ` WHERE status = 'AVAILABLE'`
	}
	query += ` ORDER BY sort_order ASC, id ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Artist{}
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *artist)
	}
	return list, rows.Err()
}

func (db *Postgres) GetArtistBySlug(ctx context.Context, slug string) (*model.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE slug = $1`
	return scanArtist(db.Pool.QueryRow(ctx, query, slug))
}

func (db *Postgres) GetArtistByID(ctx context.Context, id int64) (*model.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = $1`
	return scanArtist(db.Pool.QueryRow(ctx, query, id))
}

// FirstAvailableArtist picks the booking fallback when no preference was
// given.
func (db *Postgres) FirstAvailableArtist(ctx context.Context) (*model.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE status = 'AVAILABLE' ORDER BY sort_order ASC, id ASC LIMIT 1`
	return scanArtist(db.Pool.QueryRow(ctx, query))
}

func (db *Postgres) CreateArtist(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	query := `
		INSERT INTO artists (slug, name, bio, specialty, instagram_url, avatar_url, sort_order, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + artistColumns
	return scanArtist(db.Pool.QueryRow(ctx, query,
		a.Slug, a.Name, a.Bio, a.Specialty, a.InstagramURL, a.AvatarURL, a.SortOrder, a.Status))
}

func (db *Postgres) UpdateArtist(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	query := `
		UPDATE artists
		SET slug = $2, name = $3, bio = $4, specialty = $5, instagram_url = $6,
			avatar_url = $7, sort_order = $8, status = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + artistColumns
	return scanArtist(db.Pool.QueryRow(ctx, query,
		a.ID, a.Slug, a.Name, a.Bio, a.Specialty, a.InstagramURL, a.AvatarURL, a.SortOrder, a.Status))
}

func (db *Postgres) DeleteArtist(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
	return err
}
