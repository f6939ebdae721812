package model

import "time"

type BlogPost struct {
	ID            int64      `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `json:"content"`
	CoverImageURL *string    `json:"coverImageUrl"`
	Category      *string    `json:"category"`
	IsPublished   bool       `json:"isPublished"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type BlogPostRequest struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	CoverImageURL string `json:"coverImageUrl"`
	Category      string `json:"category"`
	IsPublished   bool   `json:"isPublished"`
}
