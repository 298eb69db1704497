package parksdk_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/smartpark/parkmobile/pkg/parksdk"
	"github.com/stretchr/testify/require"
)

func TestResumeSessionWithoutCredential(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.ResumeSession(context.Background(), "a@x.com")
	require.ErrorIs(t, err, parksdk.ErrNotAuthenticated)
}

func TestProtectedCallFailsFastAfterClear(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	client, cache := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))

	session := authedSession(t, client, cache, "a@x.com")
	require.NoError(t, cache.ClearCredential(context.Background()))

	_, err := session.UpdateProfile(context.Background(), parksdk.Profile{Email: "a@x.com"})
	require.ErrorIs(t, err, parksdk.ErrNotAuthenticated)

	// The precondition failure must not touch the network.
	require.Zero(t, requests.Load())
}

func TestUnauthorizedResponseExpiresSession(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /profile/update/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
	})

	client, cache := newTestClient(t, mux)
	session := authedSession(t, client, cache, "a@x.com")

	_, err := session.UpdateProfile(context.Background(), parksdk.Profile{Email: "a@x.com"})
	require.ErrorIs(t, err, parksdk.ErrSessionExpired)

	// The 401 is the single expiry-detection point: the credential is gone.
	cred, err := cache.Credential(context.Background())
	require.NoError(t, err)
	require.True(t, cred.IsZero())
	require.False(t, session.Authenticated(context.Background()))
}

func TestLogoutPreservesProfileCache(t *testing.T) {
	t.Parallel()

	client, cache := newTestClient(t, http.NotFoundHandler())
	session := authedSession(t, client, cache, "a@x.com")

	profile := parksdk.Profile{Name: "Alice", Email: "a@x.com", CarPlateIDs: []string{"ABC123"}}
	require.NoError(t, cache.SaveProfile(context.Background(), "a@x.com", profile))
	require.NoError(t, cache.CachePlates(context.Background(), "a@x.com", []string{"ABC123"}))

	require.NoError(t, session.Logout(context.Background()))

	cred, err := cache.Credential(context.Background())
	require.NoError(t, err)
	require.True(t, cred.IsZero())

	// Profile and plate caches survive logout for instant re-login render.
	p, err := cache.LoadProfile(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, profile, *p)

	plates, err := cache.CachedPlates(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"ABC123"}, plates)
}

func TestAuthorizationHeaderFormat(t *testing.T) {
	t.Parallel()

	var gotAuth, gotReqID string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /profile/update/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, map[string]any{"car_plate_ids": []string{}})
	})

	client, cache := newTestClient(t, mux)
	session := authedSession(t, client, cache, "a@x.com")

	_, err := session.UpdateProfile(context.Background(), parksdk.Profile{Email: "a@x.com"})
	require.NoError(t, err)

	require.Equal(t, "bearer tok-123", gotAuth)
	require.NotEmpty(t, gotReqID)
}
