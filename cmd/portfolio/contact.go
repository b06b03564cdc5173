package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kpruthvi/portfolio/internal/contactclient"
	"github.com/kpruthvi/portfolio/internal/telemetry"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

const (
	defaultEndpoint = "http://localhost:8080/"
	defaultTimeout  = 10 * time.Second
)

// terminalView renders submission state on the terminal
type terminalView struct {
	spinner *spinner.Spinner
	status  contactclient.StatusKind
	message string
}

func newTerminalView() *terminalView {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	s.Suffix = " Sending..."
	return &terminalView{spinner: s}
}

func (v *terminalView) SetBusy(busy bool) {
	if busy {
		v.spinner.Start()
	} else {
		v.spinner.Stop()
	}
}

func (v *terminalView) ShowStatus(kind contactclient.StatusKind, message string) {
	v.status, v.message = kind, message
	if kind == contactclient.StatusSuccess {
		fmt.Printf("✅ %s\n", message)
	} else {
		fmt.Printf("❌ %s\n", message)
	}
}

func (v *terminalView) ClearStatus() {
	v.status, v.message = "", ""
}

func (v *terminalView) ResetFields() {}

// staticWidget hands out a token supplied on the command line, once
type staticWidget struct {
	token string
}

func (w *staticWidget) Response() (string, error) {
	return w.token, nil
}

func (w *staticWidget) Reset() {
	w.token = ""
}

// sendContact submits once and leaves the widget reset whatever the outcome.
// The process exits right after, so the delayed reset that follows a success
// is cancelled on Close and the widget is reset here instead.
func sendContact(ctx context.Context, endpoint string, timeout time.Duration, form contactclient.Form, view contactclient.View, widget contactclient.Widget) contactclient.Result {
	client := contactclient.NewClient(contactclient.Config{
		Endpoint:   endpoint,
		HTTPClient: telemetry.NewHTTPClient(timeout),
		Logger:     logger,
	}, view, widget)

	result := client.Submit(ctx, form)
	client.Close()

	if result.Success {
		widget.Reset()
	}
	return result
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Use the contact relay",
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message through the contact relay",
	Long: `Send a message through the contact relay, exactly as the site's contact form does.
A verification token from the challenge widget is required; tokens are single use.

Example:
  portfolio contact send --first Ada --last Lovelace --email ada@example.com \
    --message "Hello" --token <widget-token> --endpoint https://relay.example.com/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		first, _ := cmd.Flags().GetString("first")
		last, _ := cmd.Flags().GetString("last")
		email, _ := cmd.Flags().GetString("email")
		message, _ := cmd.Flags().GetString("message")
		token, _ := cmd.Flags().GetString("token")
		endpoint, _ := cmd.Flags().GetString("endpoint")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		form := contactclient.Form{
			FirstName: first,
			LastName:  last,
			Email:     email,
			Message:   message,
		}
		result := sendContact(cmd.Context(), endpoint, timeout, form, newTerminalView(), &staticWidget{token: token})
		if !result.Success {
			return fmt.Errorf("submission failed (%s): %w", result.Category, result.Err)
		}

		logger.Debug("Relay accepted submission with status %d", result.StatusCode)
		return nil
	},
}
