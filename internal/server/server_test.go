package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kpruthvi/portfolio/internal/config"
	"github.com/kpruthvi/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstreams fakes the verification and email-delivery APIs
type upstreams struct {
	verifyCalls atomic.Int32
	mailCalls   atomic.Int32
	verifyBody  string
	mailStatus  int
	lastMail    []byte
	lastForm    map[string]string

	verify *httptest.Server
	mail   *httptest.Server
}

func newUpstreams(t *testing.T) *upstreams {
	t.Helper()
	u := &upstreams{verifyBody: `{"success":true}`, mailStatus: http.StatusAccepted}

	u.verify = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.verifyCalls.Add(1)
		_ = r.ParseForm()
		u.lastForm = map[string]string{
			"secret":   r.PostForm.Get("secret"),
			"response": r.PostForm.Get("response"),
			"remoteip": r.PostForm.Get("remoteip"),
		}
		io.WriteString(w, u.verifyBody)
	}))
	u.mail = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mailCalls.Add(1)
		u.lastMail, _ = io.ReadAll(r.Body)
		w.WriteHeader(u.mailStatus)
	}))
	t.Cleanup(func() {
		u.verify.Close()
		u.mail.Close()
	})
	return u
}

func newTestServer(t *testing.T, u *upstreams, overrides map[string]string) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	environ := map[string]string{
		"TURNSTILE_SECRET":     "test-secret",
		"TURNSTILE_VERIFY_URL": u.verify.URL,
		"MAIL_SEND_URL":        u.mail.URL,
		"CONTACT_TO_EMAIL":     "me@example.com",
		"CONTACT_FROM_EMAIL":   "noreply@example.com",
		"RATE_LIMIT_RPS":       "100",
		"RATE_LIMIT_BURST":     "100",
	}
	for k, v := range overrides {
		environ[k] = v
	}
	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)

	logger := logging.NewLoggerWithWriter(&bytes.Buffer{}, logging.LevelDebug)
	return NewServer(cfg, logger).Handler()
}

func do(h http.Handler, method, body string, headers map[string]string) *httptest.ResponseRecorder {
	return doFrom(h, "192.0.2.1:1234", method, body, headers)
}

func doFrom(h http.Handler, remoteAddr, method, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

const validBody = `{"name":"Ada","email":"a@x.com","message":"hi","cf-turnstile-response":"tok"}`

func TestSubmitSuccess(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, map[string]string{"TRUSTED_PLATFORM": "cloudflare"})

	w := do(h, http.MethodPost, validBody, map[string]string{"CF-Connecting-IP": "203.0.113.9"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, map[string]interface{}{"success": true, "message": "Message sent successfully!"}, decode(t, w))

	assert.EqualValues(t, 1, u.verifyCalls.Load())
	assert.EqualValues(t, 1, u.mailCalls.Load())
	assert.Equal(t, map[string]string{"secret": "test-secret", "response": "tok", "remoteip": "203.0.113.9"}, u.lastForm)

	var mail struct {
		ReplyTo struct {
			Email string `json:"email"`
		} `json:"reply_to"`
	}
	require.NoError(t, json.Unmarshal(u.lastMail, &mail))
	assert.Equal(t, "a@x.com", mail.ReplyTo.Email)
}

func TestSubmitMissingFields(t *testing.T) {
	bodies := map[string]string{
		"name":    `{"email":"a@x.com","message":"hi","cf-turnstile-response":"tok"}`,
		"email":   `{"name":"Ada","message":"hi","cf-turnstile-response":"tok"}`,
		"message": `{"name":"Ada","email":"a@x.com","cf-turnstile-response":"tok"}`,
		"token":   `{"name":"Ada","email":"a@x.com","message":"hi"}`,
		"empty":   `{"name":"","email":"a@x.com","message":"hi","cf-turnstile-response":"tok"}`,
		"null":    `{"name":null,"email":"a@x.com","message":"hi","cf-turnstile-response":"tok"}`,
		"zero":    `{"name":0,"email":"a@x.com","message":"hi","cf-turnstile-response":"tok"}`,
		"false":   `{"name":false,"email":"a@x.com","message":"hi","cf-turnstile-response":"tok"}`,
		"object":  `{"name":"Ada","email":{},"message":"hi","cf-turnstile-response":"tok"}`,
		"array":   `[]`,
		"string":  `"hello"`,
		"no body": `null`,
	}

	for missing, body := range bodies {
		t.Run(missing, func(t *testing.T) {
			u := newUpstreams(t)
			h := newTestServer(t, u, nil)

			w := do(h, http.MethodPost, body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "All fields are required", decode(t, w)["error"])
			assert.Zero(t, u.verifyCalls.Load())
			assert.Zero(t, u.mailCalls.Load())
		})
	}
}

func TestSubmitVerificationFailed(t *testing.T) {
	for name, verifyBody := range map[string]string{
		"rejected": `{"success":false}`,
		"not json": `upstream exploded`,
	} {
		t.Run(name, func(t *testing.T) {
			u := newUpstreams(t)
			u.verifyBody = verifyBody
			h := newTestServer(t, u, nil)

			w := do(h, http.MethodPost, validBody, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Spam protection check failed. Please try again.", decode(t, w)["error"])
			assert.EqualValues(t, 1, u.verifyCalls.Load())
			assert.Zero(t, u.mailCalls.Load())
		})
	}
}

func TestSubmitReusedTokenFailsAgain(t *testing.T) {
	u := newUpstreams(t)
	u.verifyBody = `{"success":false,"error-codes":["timeout-or-duplicate"]}`
	h := newTestServer(t, u, nil)

	for i := 0; i < 2; i++ {
		w := do(h, http.MethodPost, validBody, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.EqualValues(t, 2, u.verifyCalls.Load())
	assert.Zero(t, u.mailCalls.Load())
}

func TestSubmitDeliveryFailed(t *testing.T) {
	u := newUpstreams(t)
	u.mailStatus = http.StatusBadGateway
	h := newTestServer(t, u, nil)

	w := do(h, http.MethodPost, validBody, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Failed to send email. Please try again later.", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "502")
}

func TestSubmitMalformedJSON(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, nil)

	for _, body := range []string{`{"name":`, ``, `not json`} {
		w := do(h, http.MethodPost, body, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.Equal(t, "An unexpected error occurred", decode(t, w)["error"])
	}
	assert.Zero(t, u.verifyCalls.Load())
}

func TestSubmitOversizedBody(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, map[string]string{"MAX_BODY_BYTES": "64"})

	body := `{"name":"Ada","email":"a@x.com","message":"` + strings.Repeat("x", 200) + `","cf-turnstile-response":"tok"}`
	w := do(h, http.MethodPost, body, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, u.verifyCalls.Load())
}

func TestMethodNotAllowed(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := do(h, method, "", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Method not allowed", decode(t, w)["error"])
	}
}

func TestPreflight(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, nil)

	w := do(h, http.MethodOptions, "", map[string]string{"Origin": "https://example.com"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Zero(t, u.verifyCalls.Load())
}

func TestRateLimit(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, map[string]string{"RATE_LIMIT_RPS": "0.001", "RATE_LIMIT_BURST": "1"})

	assert.Equal(t, http.StatusOK, doFrom(h, "198.51.100.20:5000", http.MethodPost, validBody, nil).Code)

	w := doFrom(h, "198.51.100.20:5001", http.MethodPost, validBody, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Rate limit exceeded. Please try again later.", decode(t, w)["error"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// another client keeps its own bucket
	assert.Equal(t, http.StatusOK, doFrom(h, "198.51.100.21:5000", http.MethodPost, validBody, nil).Code)
	assert.EqualValues(t, 2, u.mailCalls.Load())
}

func TestRateLimitIgnoresForwardingFromUntrustedPeer(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, map[string]string{"RATE_LIMIT_RPS": "0.001", "RATE_LIMIT_BURST": "1"})

	accepted := 0
	for i := 0; i < 10; i++ {
		w := do(h, http.MethodPost, validBody, map[string]string{
			"X-Forwarded-For":  fmt.Sprintf("10.0.0.%d", i),
			"X-Real-IP":        fmt.Sprintf("10.0.1.%d", i),
			"CF-Connecting-IP": fmt.Sprintf("10.0.2.%d", i),
		})
		if w.Code == http.StatusOK {
			accepted++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
		}
	}

	assert.Equal(t, 1, accepted)
	assert.EqualValues(t, 1, u.mailCalls.Load())
	// the verification API sees the peer, not the forged header
	assert.Equal(t, "192.0.2.1", u.lastForm["remoteip"])
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, map[string]string{
		"RATE_LIMIT_RPS":   "0.001",
		"RATE_LIMIT_BURST": "1",
		"TRUSTED_PROXIES":  "192.0.2.1",
	})

	first := map[string]string{"X-Forwarded-For": "198.51.100.30"}
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, validBody, first).Code)
	assert.Equal(t, "198.51.100.30", u.lastForm["remoteip"])
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, validBody, first).Code)

	second := map[string]string{"X-Forwarded-For": "198.51.100.31"}
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, validBody, second).Code)

	// a peer outside the trusted list cannot borrow those buckets
	w := doFrom(h, "203.0.113.50:4000", http.MethodPost, validBody, map[string]string{"X-Forwarded-For": "198.51.100.32"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "203.0.113.50", u.lastForm["remoteip"])
}

func TestAPIAliasAndHealth(t *testing.T) {
	u := newUpstreams(t)
	h := newTestServer(t, u, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/submit", strings.NewReader(validBody))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
