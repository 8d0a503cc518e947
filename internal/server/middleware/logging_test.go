package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/users/ping", nil)
	w := httptest.NewRecorder()
	LoggingMiddleware(logger)(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)

	out := buf.String()
	assert.Contains(t, out, "HTTP request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/users/ping")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "bytes_written=15")
}

func TestLoggingMiddleware_StatusLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "2xx logs info", status: http.StatusOK, wantLevel: "level=INFO"},
		{name: "4xx logs warn", status: http.StatusNotFound, wantLevel: "level=WARN"},
		{name: "5xx logs error", status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			LoggingMiddleware(logger)(handler).ServeHTTP(w, req)

			assert.Contains(t, buf.String(), tt.wantLevel)
		})
	}
}
