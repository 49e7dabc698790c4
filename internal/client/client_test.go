package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapboard/internal/testutil"
	"github.com/leapstack-labs/leapboard/pkg/omni"
)

func testPayload() *omni.CreatePayload {
	return &omni.CreatePayload{
		ModelID: "model-1",
		Name:    "revenue",
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:     srv.URL,
		APIToken:    "secret",
		RequestRate: 1000, // keep tests fast
		Logger:      testutil.NewTestLogger(t),
	})
}

func TestSubmitCreate(t *testing.T) {
	var gotAuth, gotIdem string
	var gotBody omni.CreatePayload

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/documents", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "doc-42"})
	}))

	id, err := c.SubmitCreate(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, "doc-42", id)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.NotEmpty(t, gotIdem)
	assert.Equal(t, "revenue", gotBody.Name)
}

func TestSubmitCreate_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	logger, captured := testutil.CaptureLogger()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "doc-42"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RequestRate: 1000, Logger: logger})

	id, err := c.SubmitCreate(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, "doc-42", id)
	assert.Equal(t, int32(2), calls.Load())
	assert.Contains(t, captured.Messages(), "retryable status")
}

func TestSubmitCreate_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "doc-42"})
	}))

	id, err := c.SubmitCreate(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "doc-42", id)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSubmitCreate_ClientErrorIsFatal(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"model not found"}`, http.StatusUnprocessableEntity)
	}))

	_, err := c.SubmitCreate(context.Background(), testPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "model not found")
	assert.Equal(t, int32(1), calls.Load(), "4xx responses are not retried")
}

func TestSubmitCreate_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, MaxRetries: 2, RequestRate: 1000})

	_, err := c.SubmitCreate(context.Background(), testPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestSubmitCreate_MissingID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))

	_, err := c.SubmitCreate(context.Background(), testPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document id")
}

func TestSubmitImport(t *testing.T) {
	export := []byte(`{"document":{"dashboard":{"name":"revenue"}}}`)

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/documents/import", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "model-9", body["baseModelId"])
		assert.Contains(t, body, "document")

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "doc-77"})
	}))

	id, err := c.SubmitImport(context.Background(), export, "model-9")
	require.NoError(t, err)
	assert.Equal(t, "doc-77", id)
}

func TestSubmitCreate_ContextCancelled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SubmitCreate(ctx, testPayload())
	require.Error(t, err)
}
