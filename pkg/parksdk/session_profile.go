package parksdk

import (
	"context"
	"net/http"
)

// LoadProfile returns the cached profile for the email, or nil if nothing
// was ever cached. Lookup is case-insensitive. Cache read failures degrade
// to nil rather than propagating - the read path never errors.
func (c *Client) LoadProfile(ctx context.Context, email string) *Profile {
	p, err := c.Profiles.LoadProfile(ctx, email)
	if err != nil {
		c.Logger.Warn("failed to load cached profile",
			"email", NormalizeEmail(email), "error", err)
		return nil
	}
	return p
}

// SaveProfileDraft persists a local profile edit that has not been confirmed
// by the backend, flagged for the pending-change sync pass. Use this when an
// edit must survive an offline period; UpdateProfile is the confirmed path.
func (c *Client) SaveProfileDraft(ctx context.Context, p Profile) error {
	if p.Email == "" {
		return newValidationError("email is required")
	}
	p.NeedsSync = true
	return c.Profiles.SaveProfile(ctx, p.Email, p)
}

// UpdateProfile pushes a profile edit via PUT /profile/update/. It requires
// a live credential and makes no network call without one.
//
// On success the cache is overwritten with the submitted values merged with
// the backend's authoritative plate list, and the NeedsSync flag is cleared.
// On failure the cache is left untouched.
func (s *Session) UpdateProfile(ctx context.Context, p Profile) (*UpdateProfileResponse, error) {
	if p.Email == "" {
		return nil, newValidationError("email is required")
	}

	resp, err := s.client.doAuthRequest(ctx, http.MethodPut, "/profile/update/", UpdateProfileRequest{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.PhoneNumber,
		CarPlateIDs: plateList(p.CarPlateIDs),
	})
	if err != nil {
		return nil, err
	}

	var updateResp UpdateProfileResponse
	if err := decodeJSON(resp, &updateResp); err != nil {
		return nil, err
	}

	confirmed := Profile{
		Name:        p.Name,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		CarPlateIDs: plateList(p.CarPlateIDs),
		NeedsSync:   false,
	}
	if updateResp.CarPlateIDs != nil {
		confirmed.CarPlateIDs = updateResp.CarPlateIDs
	}
	s.client.seedProfile(ctx, confirmed)

	return &updateResp, nil
}
