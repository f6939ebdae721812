package model

import "time"

type PortfolioImage struct {
	ID         int64     `json:"id"`
	ArtistID   int64     `json:"artistId"`
	URL        string    `json:"url"`
	Title      *string   `json:"title"`
	AltText    string    `json:"altText"`
	Tags       []string  `json:"tags"`
	SortOrder  int       `json:"sortOrder"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type PortfolioImageRequest struct {
	ArtistID   int64  `json:"artistId"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	AltText    string `json:"altText"`
	Tags       string `json:"tags"`
	SortOrder  int    `json:"sortOrder"`
	IsFeatured bool   `json:"isFeatured"`
}
