package model

import "time"

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusDeclined  = "DECLINED"
	BookingStatusCompleted = "COMPLETED"
)

type Booking struct {
	ID           int64     `json:"id"`
	ArtistID     int64     `json:"artistId"`
	ClientName   string    `json:"clientName"`
	ClientEmail  string    `json:"clientEmail"`
	ClientPhone  *string   `json:"clientPhone"`
	Concept      string    `json:"concept"`
	Placement    *string   `json:"placement"`
	ReferenceURL *string   `json:"referenceUrl"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookingRequest is the public booking form payload. Style, size and
// description are folded into a single concept text on submission.
type BookingRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Style             string `json:"style"`
	Placement         string `json:"placement"`
	Size              string `json:"size"`
	Description       string `json:"description"`
	ReferenceURL      string `json:"referenceUrl"`
	PreferredArtistID int64  `json:"preferredArtistId"`
	PreferredDate     string `json:"preferredDate"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}
