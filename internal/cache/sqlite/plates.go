package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smartpark/parkmobile/pkg/parksdk"
)

// CachePlates overwrites the cached plate list for the email.
func (s *Store) CachePlates(ctx context.Context, email string, plates []string) error {
	if parksdk.NormalizeEmail(email) == "" {
		return ErrEmptyKey
	}
	if plates == nil {
		plates = []string{}
	}

	value, err := json.Marshal(plates)
	if err != nil {
		return fmt.Errorf("failed to encode plates: %w", err)
	}
	return s.set(ctx, parksdk.PlateKey(email), value)
}

// CachedPlates returns the cached plate list, or an empty list if absent.
func (s *Store) CachedPlates(ctx context.Context, email string) ([]string, error) {
	if parksdk.NormalizeEmail(email) == "" {
		return nil, ErrEmptyKey
	}

	value, err := s.get(ctx, parksdk.PlateKey(email))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []string{}, nil
	}

	var plates []string
	if err := json.Unmarshal(value, &plates); err != nil {
		return nil, fmt.Errorf("failed to decode cached plates: %w", err)
	}
	return plates, nil
}
