package parksdk_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/smartpark/parkmobile/pkg/parksdk"
	"github.com/stretchr/testify/require"
)

// TestFullAccountFlow drives register, login and a profile update end to end
// against one fake backend and checks the cache reads back consistently under
// any email casing.
func TestFullAccountFlow(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "registered"})
	})
	mux.HandleFunc("POST /login/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"access_token": "tok-flow",
			"token_type":   "bearer",
			"user": map[string]any{
				"name":          "Alice",
				"email":         "a@x.com",
				"phone":         "555",
				"car_plate_ids": []string{},
			},
		})
	})
	mux.HandleFunc("PUT /profile/update/", func(w http.ResponseWriter, r *http.Request) {
		var req parksdk.UpdateProfileRequest
		readJSON(t, r, &req)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"name":          req.Name,
			"email":         req.Email,
			"phone":         req.Phone,
			"car_plate_ids": []string{"P1"},
		})
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	_, err := client.Register(ctx, parksdk.RegisterRequest{
		Name:     "Alice",
		Email:    "A@X.com",
		Password: "secret",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)

	_, err = session.UpdateProfile(ctx, parksdk.Profile{
		Name:        "Alice B",
		Email:       "a@x.com",
		PhoneNumber: "555-9999",
	})
	require.NoError(t, err)

	// Any casing of the email resolves to the same cached record.
	for _, lookup := range []string{"a@x.com", "A@X.com", "A@x.COM"} {
		p := client.LoadProfile(ctx, lookup)
		require.NotNil(t, p, "lookup %q", lookup)
		require.Equal(t, "Alice B", p.Name)
		require.Equal(t, "555-9999", p.PhoneNumber)
		require.Equal(t, []string{"P1"}, p.CarPlateIDs)
		require.False(t, p.NeedsSync)
	}
}
