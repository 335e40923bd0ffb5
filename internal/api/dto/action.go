package dto

// ActionResponse is the toast-style result of a mutating action. Expected
// business failures (duplicate add, no matching record) come back with
// Success=false instead of an error status.
type ActionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
