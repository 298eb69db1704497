package parksdk

import (
	"context"
)

// Session represents an authenticated session. It is created by Login or
// ResumeSession and owns no token state of its own: every protected call
// reads the credential store, so clearing the store from any path (logout, a
// 401, another component) takes effect immediately.
//
// The session moves between exactly two states: Anonymous and Authenticated.
// Logout and a 401 on any protected call both return it to Anonymous; there
// is no refresh flow.
type Session struct {
	client *Client
	email  string
}

// Email returns the email this session was established for.
func (s *Session) Email() string { return s.email }

// Authenticated reports whether a credential is currently stored.
func (s *Session) Authenticated(ctx context.Context) bool {
	cred, err := s.client.Creds.Credential(ctx)
	return err == nil && !cred.IsZero()
}

// Logout clears the stored credential. The profile and plate caches are
// deliberately preserved so a re-login restores local state instantly.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.Creds.ClearCredential(ctx)
}
