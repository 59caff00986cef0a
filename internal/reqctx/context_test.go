package reqctx

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestIDAndGetRequestIDFromContext(t *testing.T) {
	t.Run("Store and retrieve request ID from context", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")

		id, err := GetRequestIDFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "req-1", id)
	})

	t.Run("Error when request ID not in context", func(t *testing.T) {
		_, err := GetRequestIDFromContext(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when context value is not a string", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), requestIDKey, 42)

		_, err := GetRequestIDFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestLogger(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("Fallback outside of a request", func(t *testing.T) {
		assert.Same(t, fallback, Logger(context.Background(), fallback))
		assert.NotNil(t, Logger(context.Background(), nil))
	})

	t.Run("Request logger wins", func(t *testing.T) {
		l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		assert.Same(t, l, Logger(WithLogger(context.Background(), l), fallback))
	})
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetRequestIDFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		Logger(r.Context(), nil).Info("inside handler")
		fmt.Fprint(w, id)
	})
	handler := Middleware(logger)(testHandler)

	t.Run("Generates request ID", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		id := rr.Body.String()
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, rr.Header().Get(HeaderRequestID))
		assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
		assert.Contains(t, buf.String(), "inside handler")
		assert.Contains(t, buf.String(), "request handled")
	})

	t.Run("Keeps incoming request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.Header.Set(HeaderRequestID, "client-42")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		assert.Equal(t, "client-42", rr.Body.String())
	})

	t.Run("Replaces malformed request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("x", 100))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)
		_, err := uuid.Parse(rr.Body.String())
		assert.NoError(t, err)
	})

	t.Run("Records status code", func(t *testing.T) {
		buf.Reset()
		h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Contains(t, buf.String(), `"status":418`)
	})
}
