package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, h http.HandlerFunc, path string) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleHealthz(t *testing.T) {
	code, body := probe(t, HandleHealthz(), "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, HealthResponse{Status: "ok"}, body)
}

func TestHandleReadyz_StoreReachable(t *testing.T) {
	var deadline time.Time
	store := PingFunc(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	})

	code, body := probe(t, HandleReadyz(store), "/readyz")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	require.False(t, deadline.IsZero(), "ping runs under a deadline")
	assert.WithinDuration(t, time.Now().Add(readyzTimeout), deadline, readyzTimeout)
}

func TestHandleReadyz_StoreUnreachable(t *testing.T) {
	calls := 0
	store := PingFunc(func(context.Context) error {
		calls++
		return context.DeadlineExceeded
	})

	code, body := probe(t, HandleReadyz(store), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body.Status)
	assert.Equal(t, "catalog store unreachable", body.Message)
	assert.NotContains(t, body.Message, "deadline", "store errors are not echoed")
	assert.Equal(t, 1, calls)
}
