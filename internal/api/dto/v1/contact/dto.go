package contact

import "github.com/kpruthvi/portfolio/internal/service"

// SubmissionRequest represents a contact form submission. Presence is the
// only check; email format is not validated.
type SubmissionRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
	Token   string `json:"cf-turnstile-response" binding:"required"`
}

// Submission converts the request into the relay's input
func (r *SubmissionRequest) Submission() service.Submission {
	return service.Submission{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}

// SubmissionResponse represents the response after a relayed submission
type SubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
