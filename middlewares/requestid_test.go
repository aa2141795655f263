package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/googleauth/middlewares"
)

// serveRequestID runs the RequestID middleware and returns the ID seen by the handler.
func serveRequestID(t *testing.T, req *http.Request, opts ...middlewares.RequestIDOption) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var captured string
	h := middlewares.RequestID(opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = middlewares.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return captured, rec
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not present", func(t *testing.T) {
		t.Parallel()

		id, rec := serveRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, id)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))

		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "existing-request-id-123")

		id, rec := serveRequestID(t, req)
		require.Equal(t, "existing-request-id-123", id)
		require.Equal(t, "existing-request-id-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("falls back to correlation header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")

		id, _ := serveRequestID(t, req)
		require.Equal(t, "corr-1", id)
	})
}

func TestRequestID_CustomOptions(t *testing.T) {
	t.Parallel()

	t.Run("WithRequestIDHeaders respects priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Custom-ID", "custom-123")
		req.Header.Set("X-Trace-ID", "trace-456")

		id, _ := serveRequestID(t, req, middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"))
		require.Equal(t, "custom-123", id)

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-456")

		id, _ = serveRequestID(t, req, middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"))
		require.Equal(t, "trace-456", id)
	})

	t.Run("WithRequestIDGenerator uses custom generator", func(t *testing.T) {
		t.Parallel()

		id, _ := serveRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }))
		require.Equal(t, "fixed", id)
	})

	t.Run("WithRequestIDResponseHeader sets custom response header", func(t *testing.T) {
		t.Parallel()

		id, rec := serveRequestID(t, httptest.NewRequest(http.MethodGet, "/", nil),
			middlewares.WithRequestIDResponseHeader("X-Trace"))
		require.Equal(t, id, rec.Header().Get("X-Trace"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestGetRequestID_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string when no request ID set", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, middlewares.GetRequestID(context.Background()))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		var ctx context.Context
		h := middlewares.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx = r.Context()
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		attr, ok := middlewares.RequestIDExtractor()(ctx)
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.NotEmpty(t, attr.Value.String())
	})

	t.Run("returns false when no request ID in context", func(t *testing.T) {
		t.Parallel()

		_, ok := middlewares.RequestIDExtractor()(context.Background())
		require.False(t, ok)
	})
}
