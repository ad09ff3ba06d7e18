package models

// ErrorResponse is the error body every endpoint returns on failure
// (400/404/500).
type ErrorResponse struct {
	Error string `json:"error" example:"Case not found"`
}

// MessageResponse acknowledges a successful mutation.
type MessageResponse struct {
	Message string `json:"message" example:"Case deleted successfully"`
}
