package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
)

func execWithTraceID(t *testing.T, h *Handler, incoming string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	return rec
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool
		wantValidUUID   bool
	}{
		{
			name:            "trace ID from request header is reused",
			requestTraceID:  "my-custom-trace-id",
			wantSameTraceID: true,
		},
		{
			name:           "no trace ID in request generates a UUID",
			requestTraceID: "",
			wantValidUUID:  true,
		},
		{
			name:            "UUID string as incoming trace ID is preserved",
			requestTraceID:  "550e8400-e29b-41d4-a716-446655440000",
			wantSameTraceID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{})
			rec := execWithTraceID(t, h, tt.requestTraceID)

			responseTraceID := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, responseTraceID, "X-Trace-ID header must be set in response")

			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, responseTraceID)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(responseTraceID)
				assert.NoError(t, err, "generated trace ID should be a valid UUID, got: %s", responseTraceID)
			}
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		rec := execWithTraceID(t, h, "")
		id := rec.Header().Get(traceIDHeader)
		require.NotEmpty(t, id)

		_, duplicate := seen[id]
		assert.False(t, duplicate, "duplicate trace ID generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerAvailableDownstream(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	var ctxLogger *logger.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromRequest(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-context-test")
	rec := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rec, req)

	require.NotNil(t, ctxLogger)
}

func TestWithTraceID_AlwaysCallsNext(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
