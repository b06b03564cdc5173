package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

// DefaultMailSendURL is the MailChannels transactional send endpoint
const DefaultMailSendURL = "https://api.mailchannels.net/tx/v1/send"

// Address is a mailbox with an optional display name
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Personalization addresses one copy of the message
type Personalization struct {
	To      []Address `json:"to"`
	Subject string    `json:"subject"`
}

// Content is one MIME part of the message body
type Content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MailMessage is the email-delivery API payload
type MailMessage struct {
	Personalizations []Personalization `json:"personalizations"`
	From             Address           `json:"from"`
	ReplyTo          Address           `json:"reply_to"`
	Content          []Content         `json:"content"`
}

// Submission is a validated contact form submission
type Submission struct {
	Name    string
	Email   string
	Message string
}

// MailConfig holds the fixed addressing used for every relayed message
type MailConfig struct {
	SendURL string
	APIKey  string
	To      Address
	From    Address
}

// MailService relays contact submissions to the email-delivery API
type MailService struct {
	config MailConfig
	client *http.Client
}

// NewMailService creates a new mail service
func NewMailService(config MailConfig, client *http.Client) *MailService {
	if config.SendURL == "" {
		config.SendURL = DefaultMailSendURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &MailService{
		config: config,
		client: client,
	}
}

var htmlBody = template.Must(template.New("contact").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #007aff; margin-bottom: 24px;">New Contact Form Submission</h2>
  <div style="background: #f5f5f7; border-radius: 12px; padding: 20px; margin-bottom: 16px;">
    <p style="margin: 0 0 8px 0;"><strong>From:</strong> {{.Name}}</p>
    <p style="margin: 0;"><strong>Email:</strong> <a href="mailto:{{.Email}}" style="color: #007aff;">{{.Email}}</a></p>
  </div>
  <div style="background: #ffffff; border: 1px solid #d2d2d7; border-radius: 12px; padding: 20px;">
    <p style="margin: 0 0 8px 0;"><strong>Message:</strong></p>
    <p style="margin: 0; white-space: pre-wrap;">{{.Message}}</p>
  </div>
</div>
`))

// ComposeMessage builds the delivery payload. The HTML part escapes
// submitter input; the plain-text part carries it verbatim.
func (s *MailService) ComposeMessage(sub Submission) (*MailMessage, error) {
	var html bytes.Buffer
	if err := htmlBody.Execute(&html, sub); err != nil {
		return nil, fmt.Errorf("failed to render html body: %w", err)
	}

	text := fmt.Sprintf(
		"New contact form submission:\n\nName: %s\nEmail: %s\n\nMessage:\n%s",
		sub.Name,
		sub.Email,
		sub.Message,
	)

	return &MailMessage{
		Personalizations: []Personalization{
			{
				To:      []Address{s.config.To},
				Subject: "Portfolio Contact: " + sub.Name,
			},
		},
		From:    s.config.From,
		ReplyTo: Address{Email: sub.Email, Name: sub.Name},
		Content: []Content{
			{Type: "text/plain", Value: text},
			{Type: "text/html", Value: html.String()},
		},
	}, nil
}

// SendContactMessage composes and sends one message. Success is judged by HTTP status only.
func (s *MailService) SendContactMessage(ctx context.Context, sub Submission) error {
	msg, err := s.ComposeMessage(sub)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.SendURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDelivery, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("X-Api-Key", s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to send message: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: mail API returned status %d", ErrDelivery, resp.StatusCode)
	}

	return nil
}
