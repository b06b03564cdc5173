package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  LogConfig
		wantErr bool
	}{
		{"stdout only", LogConfig{Level: "info"}, false},
		{"file with size", LogConfig{Level: "debug", File: "x.log", MaxSize: 10}, false},
		{"bad level", LogConfig{Level: "verbose"}, true},
		{"file without size", LogConfig{Level: "info", File: "x.log"}, true},
		{"negative backups", LogConfig{Level: "warn", MaxBackups: -1}, true},
		{"negative age", LogConfig{Level: "error", MaxAge: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, LevelWarn)

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[ERROR]")
}

func TestLogHTTPRequestDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, LevelInfo)
	l.SetLogRequests(false)

	l.LogHTTPRequest("POST", "/", "1.2.3.4", "req-1", 200, 10, "1ms")
	assert.Empty(t, buf.String())

	l.SetLogRequests(true)
	l.LogHTTPRequest("POST", "/", "1.2.3.4", "req-1", 200, 10, "1ms")
	assert.True(t, strings.Contains(buf.String(), "req-1"))
}

func TestLogHTTPError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, LevelError)

	l.LogHTTPError("POST", "/", "1.2.3.4", 500, "Failed to send email", errors.New("status 502"))
	assert.Contains(t, buf.String(), "Failed to send email: status 502")
}
