package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kpruthvi/portfolio/internal/api/dto/common"
	"github.com/kpruthvi/portfolio/internal/api/dto/v1/contact"
	"github.com/kpruthvi/portfolio/internal/logging"
	"github.com/kpruthvi/portfolio/internal/service"
	"github.com/kpruthvi/portfolio/internal/tasks"
)

// User-facing status messages
const (
	MsgTokenMissing = "Please complete the security check."
	MsgSent         = "Message sent! I'll get back to you soon."
	MsgFailed       = "Failed to send message. Please try again."
	MsgNetwork      = "Network error. Please check your connection and try again."
)

// DefaultResetDelay is how long the widget waits after a success before it is reset
const DefaultResetDelay = 100 * time.Millisecond

// ErrBusy is returned when a submission is already in flight
var ErrBusy = errors.New("submission already in progress")

// Form holds the fields a visitor fills in
type Form struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// Name joins the first and last name the way the relay expects it
func (f Form) Name() string {
	return f.FirstName + " " + f.LastName
}

// Widget is the bot-verification challenge that issues single-use tokens
type Widget interface {
	Response() (string, error)
	Reset()
}

// StatusKind selects how a status message is presented
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// View renders submission state
type View interface {
	SetBusy(busy bool)
	ShowStatus(kind StatusKind, message string)
	ClearStatus()
	ResetFields()
}

// Result is the outcome of one Submit call
// StatusCode is zero when no response was received.
type Result struct {
	Success    bool
	Category   service.Category
	Message    string
	StatusCode int
	Err        error
}

// Config configures a Client
type Config struct {
	Endpoint   string
	HTTPClient *http.Client
	ResetDelay time.Duration
	Logger     *logging.Logger
}

// Client submits contact forms to the relay and drives a View through the outcome
type Client struct {
	endpoint   string
	httpClient *http.Client
	resetDelay time.Duration
	logger     *logging.Logger

	view      View
	widget    Widget
	scheduler *tasks.Scheduler
	busy      atomic.Bool
}

// NewClient creates a client bound to a view and a widget
func NewClient(cfg Config, view View, widget Widget) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.ResetDelay < 0 {
		cfg.ResetDelay = 0
	} else if cfg.ResetDelay == 0 {
		cfg.ResetDelay = DefaultResetDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetGlobalLogger()
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: cfg.HTTPClient,
		resetDelay: cfg.ResetDelay,
		logger:     cfg.Logger,
		view:       view,
		widget:     widget,
		scheduler:  tasks.NewScheduler(),
	}
}

// Submit sends the form once. Without a widget token nothing is sent.
// The view is busy for exactly the duration of the network call.
func (c *Client) Submit(ctx context.Context, form Form) Result {
	if !c.busy.CompareAndSwap(false, true) {
		return Result{Category: service.CategoryValidation, Err: ErrBusy}
	}
	defer c.busy.Store(false)

	token, err := c.widget.Response()
	if err != nil {
		c.logger.Warn("Verification widget error: %v", err)
		token = ""
	}
	if token == "" {
		c.view.ShowStatus(StatusError, MsgTokenMissing)
		return Result{
			Category: service.CategoryValidation,
			Message:  MsgTokenMissing,
			Err:      fmt.Errorf("%w: verification token missing", service.ErrValidation),
		}
	}

	result := c.send(ctx, form, token)

	switch {
	case result.Success:
		c.view.ShowStatus(StatusSuccess, result.Message)
		c.view.ResetFields()
		c.scheduler.After(c.resetDelay, c.widget.Reset)
	default:
		c.view.ShowStatus(StatusError, result.Message)
		c.widget.Reset()
	}

	return result
}

// send performs the network call while the view is marked busy
func (c *Client) send(ctx context.Context, form Form, token string) Result {
	c.view.SetBusy(true)
	defer c.view.SetBusy(false)
	c.view.ClearStatus()

	payload, err := json.Marshal(contact.SubmissionRequest{
		Name:    form.Name(),
		Email:   form.Email,
		Message: form.Message,
		Token:   token,
	})
	if err != nil {
		return transportFailure(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return transportFailure(0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Form submission error: %v", err)
		return transportFailure(0, err)
	}
	defer resp.Body.Close()

	var body relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error("Form submission error: status %d, %v", resp.StatusCode, err)
		return transportFailure(resp.StatusCode, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Success: true, Message: MsgSent, StatusCode: resp.StatusCode}
	}

	message := body.Error
	if message == "" {
		message = MsgFailed
	}
	category := categoryFor(resp.StatusCode, body.Error)
	return Result{
		Category:   category,
		Message:    message,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("%w: relay returned status %d", sentinelFor(category), resp.StatusCode),
	}
}

// Close cancels any pending delayed widget reset
func (c *Client) Close() {
	c.scheduler.Close()
}

// relayResponse covers both the success and the error body
type relayResponse struct {
	contact.SubmissionResponse
	common.ErrorResponse
}

func transportFailure(status int, err error) Result {
	return Result{
		Category:   service.CategoryTransport,
		Message:    MsgNetwork,
		StatusCode: status,
		Err:        fmt.Errorf("%w: %v", service.ErrTransport, err),
	}
}

// categoryFor recovers the failure category from the relay's status and message
func categoryFor(status int, message string) service.Category {
	switch {
	case strings.EqualFold(message, common.MsgVerificationFailed):
		return service.CategoryVerification
	case strings.EqualFold(message, common.MsgDeliveryFailed):
		return service.CategoryDelivery
	case status >= 400 && status < 500:
		return service.CategoryValidation
	default:
		return service.CategoryTransport
	}
}

func sentinelFor(category service.Category) error {
	switch category {
	case service.CategoryValidation:
		return service.ErrValidation
	case service.CategoryVerification:
		return service.ErrVerification
	case service.CategoryDelivery:
		return service.ErrDelivery
	default:
		return service.ErrTransport
	}
}
