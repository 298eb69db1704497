package parksdk

import (
	"context"
	"net/http"
)

// SyncPendingProfiles pushes every cached profile flagged NeedsSync to the
// backend. It is a best-effort background pass: run it opportunistically at
// process start, off the critical path. Nothing is surfaced to the user -
// failures are logged and the flag stays set for a later attempt.
//
// The pass is safe to run concurrently with foreground edits: it only acts
// on the NeedsSync flag, every write is a full-record overwrite, and the
// user's own eventual save simply wins.
func (c *Client) SyncPendingProfiles(ctx context.Context) {
	pending, err := c.Profiles.PendingProfiles(ctx)
	if err != nil {
		c.Logger.Warn("pending sync: failed to enumerate profiles", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	for _, p := range pending {
		cred, err := c.Creds.Credential(ctx)
		if err != nil || cred.IsZero() {
			c.Logger.Debug("pending sync: no credential, skipping",
				"email", NormalizeEmail(p.Email))
			continue
		}

		if err := c.pushPendingProfile(ctx, p); err != nil {
			c.Logger.Warn("pending sync: push failed",
				"email", NormalizeEmail(p.Email), "error", err)
			continue
		}

		c.Logger.Info("pending sync: profile pushed",
			"email", NormalizeEmail(p.Email))
	}
}

// pushPendingProfile pushes one flagged profile and, on success, clears the
// flag and takes the backend's plate list as authoritative.
func (c *Client) pushPendingProfile(ctx context.Context, p Profile) error {
	resp, err := c.doAuthRequest(ctx, http.MethodPut, "/profile/update/", UpdateProfileRequest{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.PhoneNumber,
		CarPlateIDs: plateList(p.CarPlateIDs),
	})
	if err != nil {
		return err
	}

	var updateResp UpdateProfileResponse
	if err := decodeJSON(resp, &updateResp); err != nil {
		return err
	}

	confirmed := p
	confirmed.NeedsSync = false
	if updateResp.CarPlateIDs != nil {
		confirmed.CarPlateIDs = updateResp.CarPlateIDs
	}
	return c.Profiles.SaveProfile(ctx, confirmed.Email, confirmed)
}
