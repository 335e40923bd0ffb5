package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RedirectResponse tells the caller to navigate to another page, used for the
// unauthenticated sign-in flow.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}
