/*
Package parksdk implements the client core of the SmartPark parking
reservation service: registration, login, profile management, vehicle plate
reconciliation and reservations against the remote REST backend, with a
local persistent cache for instant rendering and degraded-mode fallback.

# Client vs Session

The package is organized around two types:

  - Client: unauthenticated operations, cache reads, and session creation
  - Session: operations that require a stored bearer credential

Create a Client with an injected cache (any implementation of the Cache
interface; internal/cache provides sqlite and in-memory drivers):

	client := parksdk.NewClient("http://park.example.com:8000", cache)

	// Register an account
	resp, err := client.Register(ctx, parksdk.RegisterRequest{...})

	// Log in to obtain a session
	session, err := client.Login(ctx, "a@x.com", "secret")

Use the Session for protected operations:

	_, err = session.UpdateProfile(ctx, profile)
	err = session.Reconcile(ctx, email, desiredPlates)
	reservations, err := session.ListReservations(ctx, email)

# Sessions and expiry

The Session holds no token state of its own; every protected call reads the
credential store, and absence of a stored token is the sole signal that no
session is active. There is no client-side expiry tracking or refresh flow:
a 401 on any protected call clears the credential and surfaces
ErrSessionExpired, after which the user must log in again.

Logout clears only the credential. Cached profiles and plate lists survive
logout on purpose, so the next login renders instantly from local state.

# Local cache semantics

Profiles and plate lists are keyed by normalized (lower-cased) email, one
record per email, and every write is a full-record overwrite. The plate
cache is a stale fallback only: FetchPlates returns the backend list and
refreshes the cache when the call succeeds, and silently falls back to the
last snapshot when it does not.

A profile edit that cannot be confirmed immediately is saved with
SaveProfileDraft, which flags it NeedsSync. SyncPendingProfiles pushes all
flagged entries best-effort, typically once at process start:

	go client.SyncPendingProfiles(ctx)

# Error handling

Every boundary-crossing operation returns *APIError, classified by Kind:
validation, not_authenticated, network, rejected or session_expired. The
sentinels ErrNotAuthenticated and ErrSessionExpired match with errors.Is
regardless of detail text. Cache reads never error; they degrade to nil or
empty results.
*/
package parksdk
