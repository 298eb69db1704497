package parksdk_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/smartpark/parkmobile/pkg/parksdk"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("seeds profile cache with submitted data", func(t *testing.T) {
		var gotReq parksdk.RegisterRequest
		mux := http.NewServeMux()
		mux.HandleFunc("POST /register/", func(w http.ResponseWriter, r *http.Request) {
			readJSON(t, r, &gotReq)
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "registered"})
		})

		client, cache := newTestClient(t, mux)
		resp, err := client.Register(context.Background(), parksdk.RegisterRequest{
			Name:     "Alice",
			Email:    "Alice@X.com",
			Phone:    "555-1234",
			Password: "secret",
		})
		require.NoError(t, err)
		require.Equal(t, "registered", resp.Message)

		// Defaults applied on the wire
		require.Equal(t, "user", gotReq.Role)
		require.Equal(t, []string{}, gotReq.CarPlateIDs)

		// Cache seeded under the normalized email
		p, err := cache.LoadProfile(context.Background(), "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, "Alice", p.Name)
		require.Equal(t, "555-1234", p.PhoneNumber)
		require.False(t, p.NeedsSync)
	})

	t.Run("missing fields never reach the network", func(t *testing.T) {
		requests := 0
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))

		_, err := client.Register(context.Background(), parksdk.RegisterRequest{Email: "a@x.com"})
		require.Error(t, err)

		var apiErr *parksdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, parksdk.ErrorKindValidation, apiErr.Kind)
		require.Zero(t, requests)
	})

	t.Run("backend rejection carries the detail message", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /register/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusBadRequest, map[string]string{"detail": "email already registered"})
		})

		client, cache := newTestClient(t, mux)
		_, err := client.Register(context.Background(), parksdk.RegisterRequest{
			Name: "Alice", Email: "a@x.com", Password: "secret",
		})

		var apiErr *parksdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, parksdk.ErrorKindRejected, apiErr.Kind)
		require.Equal(t, "email already registered", apiErr.Detail)

		// Failed registration must not seed the cache
		p, err := cache.LoadProfile(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.Nil(t, p)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	loginOK := func(t *testing.T) http.Handler {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /login/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"access_token": "tok-abc",
				"token_type":   "bearer",
				"user": map[string]any{
					"name":          "Alice",
					"email":         "a@x.com",
					"phone":         "555-1234",
					"car_plate_ids": []string{"ABC123"},
				},
			})
		})
		return mux
	}

	t.Run("stores credential and seeds profile", func(t *testing.T) {
		client, cache := newTestClient(t, loginOK(t))

		session, err := client.Login(context.Background(), "a@x.com", "secret")
		require.NoError(t, err)
		require.Equal(t, "a@x.com", session.Email())
		require.True(t, session.Authenticated(context.Background()))

		cred, err := cache.Credential(context.Background())
		require.NoError(t, err)
		require.Equal(t, "tok-abc", cred.Token)
		require.Equal(t, "bearer", cred.TokenType)

		p, err := cache.LoadProfile(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, []string{"ABC123"}, p.CarPlateIDs)
	})

	t.Run("keeps a locally edited profile awaiting sync", func(t *testing.T) {
		client, cache := newTestClient(t, loginOK(t))

		dirty := parksdk.Profile{
			Name:        "Alice Edited",
			Email:       "a@x.com",
			PhoneNumber: "999",
			CarPlateIDs: []string{"NEW111"},
			NeedsSync:   true,
		}
		require.NoError(t, cache.SaveProfile(context.Background(), "a@x.com", dirty))

		_, err := client.Login(context.Background(), "a@x.com", "secret")
		require.NoError(t, err)

		p, err := cache.LoadProfile(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.Equal(t, dirty, *p)
	})

	t.Run("rejected credentials store nothing", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /login/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
		})

		client, cache := newTestClient(t, mux)
		_, err := client.Login(context.Background(), "a@x.com", "wrong")

		var apiErr *parksdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, parksdk.ErrorKindRejected, apiErr.Kind)

		cred, err := cache.Credential(context.Background())
		require.NoError(t, err)
		require.True(t, cred.IsZero())
	})

	t.Run("unreachable backend is a network error", func(t *testing.T) {
		client, _ := newOfflineClient(t)

		_, err := client.Login(context.Background(), "a@x.com", "secret")

		var apiErr *parksdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, parksdk.ErrorKindNetwork, apiErr.Kind)
	})
}
