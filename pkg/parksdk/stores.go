package parksdk

import (
	"context"
	"strings"
)

// Persisted key names. Drivers must keep keys independent: writing one must
// never disturb another (the cache is single-writer-per-key, full-record
// overwrite, last write wins).
const (
	KeyAccessToken = "access_token"
	KeyTokenType   = "token_type"

	profileKeyPrefix = "userProfile_"
	plateKeyPrefix   = "userCarPlates_"
)

// NormalizeEmail lower-cases and trims an email for use as a cache identity
// key. Profile and plate lookups are case-insensitive by contract.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileKey returns the persisted key for a user's cached profile.
func ProfileKey(email string) string {
	return profileKeyPrefix + NormalizeEmail(email)
}

// PlateKey returns the persisted key for a user's cached plate list.
func PlateKey(email string) string {
	return plateKeyPrefix + NormalizeEmail(email)
}

// CredentialStore persists the current bearer credential. At most one
// credential is live process-wide.
type CredentialStore interface {
	// StoreCredential overwrites any existing credential.
	StoreCredential(ctx context.Context, cred Credential) error

	// Credential returns the stored credential, or the zero value when no
	// session is active. Absence is not an error.
	Credential(ctx context.Context) (Credential, error)

	// ClearCredential removes the stored credential. Idempotent.
	ClearCredential(ctx context.Context) error
}

// ProfileCache persists the last-known profile per normalized email.
type ProfileCache interface {
	// LoadProfile returns the cached profile for the email, or nil if the
	// email was never cached. Lookup is case-insensitive.
	LoadProfile(ctx context.Context, email string) (*Profile, error)

	// SaveProfile overwrites the full cached record for the email. Callers
	// must supply the complete record they intend to persist; partial
	// fields are never merged silently.
	SaveProfile(ctx context.Context, email string, p Profile) error

	// PendingProfiles returns all cached profiles flagged NeedsSync.
	PendingProfiles(ctx context.Context) ([]Profile, error)
}

// PlateCache persists the last successfully fetched plate list per
// normalized email. It is a degraded-mode fallback only and is never
// treated as authoritative while the backend is reachable.
type PlateCache interface {
	// CachePlates overwrites the cached list for the email.
	CachePlates(ctx context.Context, email string, plates []string) error

	// CachedPlates returns the cached list, or an empty list if absent.
	CachedPlates(ctx context.Context, email string) ([]string, error)
}

// Cache bundles the three key namespaces a driver provides.
type Cache interface {
	CredentialStore
	ProfileCache
	PlateCache
}
