package models

// ErrorResponse is the body the backend returns with a non-2xx status.
type ErrorResponse struct {
	Message string `json:"message"`
}
