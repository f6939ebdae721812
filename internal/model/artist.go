package model

import "time"

const (
	ArtistStatusAvailable = "AVAILABLE"
	ArtistStatusInactive  = "INACTIVE"
)

type Artist struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Bio          *string   `json:"bio"`
	Specialty    *string   `json:"specialty"`
	InstagramURL *string   `json:"instagramUrl"`
	AvatarURL    *string   `json:"avatarUrl"`
	SortOrder    int       `json:"sortOrder"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ArtistRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Bio       string `json:"bio"`
	Specialty string `json:"specialty"`
	IGHandle  string `json:"igHandle"`
	AvatarURL string `json:"avatarUrl"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}
