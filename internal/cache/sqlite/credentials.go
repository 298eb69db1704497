package sqlite

import (
	"context"
	"fmt"

	"github.com/smartpark/parkmobile/pkg/parksdk"
)

// StoreCredential overwrites the persisted bearer credential. The token
// value is sealed at rest when a SealBox is configured; the token type is
// not a secret and is stored as-is.
func (s *Store) StoreCredential(ctx context.Context, cred parksdk.Credential) error {
	token := []byte(cred.Token)
	if s.box != nil {
		sealed, err := s.box.Seal(token)
		if err != nil {
			return fmt.Errorf("failed to seal token: %w", err)
		}
		token = sealed
	}

	if err := s.set(ctx, parksdk.KeyAccessToken, token); err != nil {
		return err
	}
	return s.set(ctx, parksdk.KeyTokenType, []byte(cred.TokenType))
}

// Credential returns the stored credential, or the zero value when absent.
// A token that cannot be unsealed (rotated key, corrupt row) is treated as
// absent so the caller falls back to a fresh login instead of erroring.
func (s *Store) Credential(ctx context.Context) (parksdk.Credential, error) {
	token, err := s.get(ctx, parksdk.KeyAccessToken)
	if err != nil {
		return parksdk.Credential{}, err
	}
	if token == nil {
		return parksdk.Credential{}, nil
	}

	if s.box != nil {
		plain, err := s.box.Open(token)
		if err != nil {
			return parksdk.Credential{}, nil
		}
		token = plain
	}

	tokenType, err := s.get(ctx, parksdk.KeyTokenType)
	if err != nil {
		return parksdk.Credential{}, err
	}

	return parksdk.Credential{
		Token:     string(token),
		TokenType: string(tokenType),
	}, nil
}

// ClearCredential removes the persisted credential. Idempotent.
func (s *Store) ClearCredential(ctx context.Context) error {
	if err := s.del(ctx, parksdk.KeyAccessToken); err != nil {
		return err
	}
	return s.del(ctx, parksdk.KeyTokenType)
}
