package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundsight/pkg/requestcontext"
)

func TestMetadata(t *testing.T) {
	var captured struct {
		requestID string
		clientIP  string
		userAgent string
	}
	handler := Metadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		captured.requestID = requestcontext.RequestID(ctx)
		captured.clientIP = requestcontext.ClientIP(ctx)
		captured.userAgent = requestcontext.UserAgent(ctx)
	}))

	t.Run("honors a caller-supplied request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/funds", nil)
		req.Header.Set("X-Request-ID", "req-42")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "req-42", captured.requestID)
		assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
	})

	t.Run("generates an ID when none is supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/funds", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.NotEmpty(t, captured.requestID)
		_, err := uuid.Parse(captured.requestID)
		assert.NoError(t, err)
		assert.Equal(t, captured.requestID, rr.Header().Get("X-Request-ID"))
	})

	t.Run("captures client metadata", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/funds", nil)
		req.Header.Set("User-Agent", "fundsight-cli/1.0")
		req.RemoteAddr = "192.0.2.7:51234"
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "192.0.2.7", captured.clientIP)
		assert.Equal(t, "fundsight-cli/1.0", captured.userAgent)
	})

	t.Run("prefers the first forwarded hop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/funds", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "203.0.113.9", captured.clientIP)
	})
}
