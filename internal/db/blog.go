package db

import (
	"context"

	"github.com/honkaku-tattoo/backend/internal/model"
)

func (db *Postgres) EnsureBlogSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS blog_posts (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			excerpt TEXT,
			content TEXT NOT NULL DEFAULT '',
			cover_image_url TEXT,
			category TEXT,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS blog_posts_published_idx ON blog_posts(is_published, published_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const blogColumns = `id, slug, title, excerpt, content, cover_image_url, category, is_published, published_at, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (*model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Excerpt,
		&p.Content,
		&p.CoverImageURL,
		&p.Category,
		&p.IsPublished,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts`
	if publishedOnly {
		query += ` WHERE is_published ORDER BY published_at DESC NULLS LAST`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.BlogPost{}
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *post)
	}
	return list, rows.Err()
}

func (db *Postgres) GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE slug = $1`
	return scanBlogPost(db.Pool.QueryRow(ctx, query, slug))
}

func (db *Postgres) GetBlogPostByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`
	return scanBlogPost(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) CreateBlogPost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (slug, title, excerpt, content, cover_image_url, category, is_published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + blogColumns
	return scanBlogPost(db.Pool.QueryRow(ctx, query,
		p.Slug, p.Title, p.Excerpt, p.Content, p.CoverImageURL, p.Category, p.IsPublished, p.PublishedAt))
}

func (db *Postgres) UpdateBlogPost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	query := `
		UPDATE blog_posts
		SET slug = $2, title = $3, excerpt = $4, content = $5, cover_image_url = $6,
			category = $7, is_published = $8, published_at = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + blogColumns
	return scanBlogPost(db.Pool.QueryRow(ctx, query,
		p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.CoverImageURL, p.Category, p.IsPublished, p.PublishedAt))
}

func (db *Postgres) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}
