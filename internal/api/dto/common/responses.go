package common

// ErrorResponse is the body of every failed response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Client-visible messages. Internal error detail never replaces these.
const (
	MsgSent               = "Message sent successfully!"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgFieldsRequired     = "All fields are required"
	MsgVerificationFailed = "Spam protection check failed. Please try again."
	MsgDeliveryFailed     = "Failed to send email. Please try again later."
	MsgUnexpected         = "An unexpected error occurred"
	MsgRateLimited        = "Rate limit exceeded. Please try again later."
	MsgNotFound           = "Not found"
)

// NewErrorResponse creates a new error body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
