package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not learn which.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnavailable marks transient credential-store failures, distinct
	// from bad input.
	ErrUnavailable = errors.New("store unavailable")

	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	// ErrNoArtist means a booking could not be placed because no artist
	// is available.
	ErrNoArtist = errors.New("no artists available")
)
