package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoveryMiddleware(t *testing.T) {
	recovery := RecoveryMiddleware(setupTestLogger())

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		recovery(panicking).ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// No panic detail leaks to the client
	assert.NotContains(t, w.Body.String(), "something exploded")
	assert.Contains(t, w.Body.String(), `"fail"`)
}

func TestRecoveryMiddleware_NoPanic(t *testing.T) {
	recovery := RecoveryMiddleware(setupTestLogger())

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	recovery(ok).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
