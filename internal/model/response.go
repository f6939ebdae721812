package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// RateLimitedResponse maps a limiter denial onto the wire; retryAfter is
// whole seconds remaining in the current window.
type RateLimitedResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}
