package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smartpark/parkmobile/pkg/parksdk"
)

// ErrEmptyKey reports a profile or plate operation with an empty email.
var ErrEmptyKey = errors.New("cache: empty email key")

// LoadProfile returns the cached profile for the email, or nil if never
// cached. Lookup is by normalized email.
func (s *Store) LoadProfile(ctx context.Context, email string) (*parksdk.Profile, error) {
	if parksdk.NormalizeEmail(email) == "" {
		return nil, ErrEmptyKey
	}

	value, err := s.get(ctx, parksdk.ProfileKey(email))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var p parksdk.Profile
	if err := json.Unmarshal(value, &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return &p, nil
}

// SaveProfile overwrites the full cached record for the email.
func (s *Store) SaveProfile(ctx context.Context, email string, p parksdk.Profile) error {
	if parksdk.NormalizeEmail(email) == "" {
		return ErrEmptyKey
	}

	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return s.set(ctx, parksdk.ProfileKey(email), value)
}

// PendingProfiles returns all cached profiles flagged NeedsSync. Rows that
// fail to decode are skipped; a corrupt entry must not starve the rest of
// the sync pass.
func (s *Store) PendingProfiles(ctx context.Context) ([]parksdk.Profile, error) {
	values, err := s.listPrefix(ctx, parksdk.ProfileKey(""))
	if err != nil {
		return nil, err
	}

	var pending []parksdk.Profile
	for _, value := range values {
		var p parksdk.Profile
		if err := json.Unmarshal(value, &p); err != nil {
			continue
		}
		if p.NeedsSync {
			pending = append(pending, p)
		}
	}
	return pending, nil
}
