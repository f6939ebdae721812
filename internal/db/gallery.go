package db

import (
	"context"

	"github.com/honkaku-tattoo/backend/internal/model"
)

func (db *Postgres) EnsureGallerySchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS portfolio_images (
			id BIGSERIAL PRIMARY KEY,
			artist_id BIGINT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			title TEXT,
			alt_text TEXT NOT NULL DEFAULT 'Artwork',
			tags TEXT[] NOT NULL DEFAULT '{}',
			sort_order INT NOT NULL DEFAULT 0,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS portfolio_images_artist_idx ON portfolio_images(artist_id, sort_order)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const portfolioColumns = `id, artist_id, url, title, alt_text, tags, sort_order, is_featured, created_at, updated_at`

func scanPortfolioImage(row interface{ Scan(...any) error }) (*model.PortfolioImage, error) {
	var img model.PortfolioImage
	err := row.Scan(
		&img.ID,
		&img.ArtistID,
		&img.URL,
		&img.Title,
		&img.AltText,
		&img.Tags,
		&img.SortOrder,
		&img.IsFeatured,
		&img.CreatedAt,
		&img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListPortfolioImages returns the gallery, optionally scoped to one artist
// (artistID = 0 means all).
func (db *Postgres) ListPortfolioImages(ctx context.Context, artistID int64) ([]model.PortfolioImage, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_images`
	args := []any{}
	if artistID != 0 {
		query += ` WHERE artist_id = $1`
		args = append(args, artistID)
	}
	query += ` ORDER BY sort_order ASC, id ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.PortfolioImage{}
	for rows.Next() {
		img, err := scanPortfolioImage(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *img)
	}
	return list, rows.Err()
}

func (db *Postgres) CreatePortfolioImage(ctx context.Context, img *model.PortfolioImage) (*model.PortfolioImage, error) {
	query := `
		INSERT INTO portfolio_images (artist_id, url, title, alt_text, tags, sort_order, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + portfolioColumns
	return scanPortfolioImage(db.Pool.QueryRow(ctx, query,
		img.ArtistID, img.URL, img.Title, img.AltText, img.Tags, img.SortOrder, img.IsFeatured))
}

func (db *Postgres) UpdatePortfolioImage(ctx context.Context, img *model.PortfolioImage) (*model.PortfolioImage, error) {
	query := `
		UPDATE portfolio_images
		SET artist_id = $2, url = $3, title = $4, alt_text = $5, tags = $6,
			sort_order = $7, is_featured = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + portfolioColumns
	return scanPortfolioImage(db.Pool.QueryRow(ctx, query,
		img.ID, img.ArtistID, img.URL, img.Title, img.AltText, img.Tags, img.SortOrder, img.IsFeatured))
}

func (db *Postgres) DeletePortfolioImage(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM portfolio_images WHERE id = $1`, id)
	return err
}
