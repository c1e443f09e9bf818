package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoscope/cargoscope/internal/api/middleware"
	"github.com/cargoscope/cargoscope/internal/api/models"
)

func TestRecovery_ConvertsPanicToProblem(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := middleware.Recovery(log)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("emission factor table corrupted")
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/estimates:compute", http.NoBody)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "/v1/estimates:compute", problem.Instance)
	// The panic value stays in the logs, not the response.
	assert.NotContains(t, w.Body.String(), "emission factor table corrupted")
	assert.Contains(t, buf.String(), "handler panicked")
}

func TestRecovery_PassesThroughAbortHandler(t *testing.T) {
	handler := middleware.Recovery(zerolog.New(io.Discard))(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w := httptest.NewRecorder()

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(w, req)
	})
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	handler := middleware.Recovery(zerolog.New(io.Discard))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
