package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultTurnstileVerifyURL is the Cloudflare Turnstile siteverify endpoint
const DefaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// TurnstileService handles bot-verification token checks
type TurnstileService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewTurnstileService creates a new verification service
func NewTurnstileService(secretKey, verifyURL string, client *http.Client) *TurnstileService {
	if verifyURL == "" {
		verifyURL = DefaultTurnstileVerifyURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TurnstileService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client:    client,
	}
}

// turnstileResponse represents the response from the siteverify API
type turnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	Action      string   `json:"action"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// VerifyToken checks a single-use token. Any error, unexpected status or
// undecodable body counts as a failed check; it returns nil only on an
// explicit success from the API.
func (s *TurnstileService) VerifyToken(ctx context.Context, token, remoteIP string) error {
	if s.secretKey == "" {
		return fmt.Errorf("%w: secret key not configured", ErrVerification)
	}

	if token == "" {
		return fmt.Errorf("%w: token is required", ErrVerification)
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrVerification, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", ErrVerification, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: siteverify returned status %d", ErrVerification, resp.StatusCode)
	}

	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrVerification, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: rejected: %v", ErrVerification, result.ErrorCodes)
	}

	return nil
}
