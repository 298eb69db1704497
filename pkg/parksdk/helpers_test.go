package parksdk_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartpark/parkmobile/internal/cache/memory"
	"github.com/smartpark/parkmobile/pkg/parksdk"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against a fake backend and a fresh in-memory
// cache.
func newTestClient(t *testing.T, handler http.Handler) (*parksdk.Client, *memory.Cache) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache := memory.New()
	client := parksdk.NewClient(srv.URL, cache)
	client.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return client, cache
}

// newOfflineClient wires a client whose backend is unreachable.
func newOfflineClient(t *testing.T) (*parksdk.Client, *memory.Cache) {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // unreachable on purpose

	cache := memory.New()
	client := parksdk.NewClient(srv.URL, cache)
	client.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return client, cache
}

// authedSession stores a credential and resumes a session for it, skipping
// the login round trip.
func authedSession(t *testing.T, client *parksdk.Client, cache *memory.Cache, email string) *parksdk.Session {
	t.Helper()

	err := cache.StoreCredential(context.Background(), parksdk.Credential{
		Token:     "tok-123",
		TokenType: "bearer",
	})
	require.NoError(t, err)

	session, err := client.ResumeSession(context.Background(), email)
	require.NoError(t, err)
	return session
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func readJSON(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}
