package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BackendErrorBody is the error envelope the analytics backend returns on non-2xx.
type BackendErrorBody struct {
	Detail string `json:"detail"`
}
