package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kpruthvi/portfolio/internal/contactclient"
	"github.com/kpruthvi/portfolio/internal/service"

	"github.com/stretchr/testify/assert"
)

type countingWidget struct {
	staticWidget
	resets atomic.Int32
}

func (w *countingWidget) Reset() {
	w.resets.Add(1)
	w.staticWidget.Reset()
}

var testForm = contactclient.Form{FirstName: "Ada", LastName: "Lovelace", Email: "a@x.com", Message: "hi"}

func TestSendContactResetsWidget(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		success bool
	}{
		{name: "success", status: http.StatusOK, body: `{"success":true,"message":"Message sent successfully!"}`, success: true},
		{name: "relay failure", status: http.StatusBadRequest, body: `{"error":"Spam protection check failed. Please try again."}`},
		{name: "non-JSON reply", status: http.StatusBadGateway, body: `bad gateway`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			widget := &countingWidget{staticWidget: staticWidget{token: "tok"}}
			result := sendContact(context.Background(), srv.URL, time.Second, testForm, newTerminalView(), widget)

			assert.Equal(t, tt.success, result.Success)
			assert.EqualValues(t, 1, widget.resets.Load())
			assert.Empty(t, widget.token)
		})
	}
}

func TestSendContactWithoutToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	result := sendContact(context.Background(), srv.URL, time.Second, testForm, newTerminalView(), &countingWidget{})

	assert.False(t, result.Success)
	assert.Equal(t, service.CategoryValidation, result.Category)
	assert.Equal(t, contactclient.MsgTokenMissing, result.Message)
	assert.Zero(t, calls.Load())
}

func TestStaticWidgetIsSingleUse(t *testing.T) {
	w := &staticWidget{token: "tok"}

	token, err := w.Response()
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)

	w.Reset()
	token, _ = w.Response()
	assert.Empty(t, token)
}
