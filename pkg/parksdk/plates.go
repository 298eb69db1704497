package parksdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// FetchPlates returns the user's plate list via GET /car-plates/{email}.
// On success the plate cache is refreshed with the backend list. When the
// call fails for any reason the last successfully fetched snapshot is
// returned instead - the failure is swallowed, not surfaced, so the read
// path never errors. Callers must tolerate staleness.
func (c *Client) FetchPlates(ctx context.Context, email string) []string {
	resp, err := c.doRequest(ctx, http.MethodGet, "/car-plates/"+url.PathEscape(email), nil)
	if err != nil {
		return c.cachedPlates(ctx, email, err)
	}

	var platesResp platesResponse
	if err := decodeJSON(resp, &platesResp); err != nil {
		return c.cachedPlates(ctx, email, err)
	}

	plates := plateList(platesResp.CarPlateIDs)
	if err := c.Plates.CachePlates(ctx, email, plates); err != nil {
		c.Logger.Warn("failed to cache plates",
			"email", NormalizeEmail(email), "error", err)
	}
	return plates
}

// cachedPlates is the degraded-mode fallback for FetchPlates.
func (c *Client) cachedPlates(ctx context.Context, email string, cause error) []string {
	c.Logger.Debug("plate fetch failed, using cached snapshot",
		"email", NormalizeEmail(email), "error", cause)

	plates, err := c.Plates.CachedPlates(ctx, email)
	if err != nil || plates == nil {
		return []string{}
	}
	return plates
}

// AddPlate registers a plate for the user via POST /car-plates/{email}.
// Requires a live credential. The cache is not touched here; the
// authoritative refresh happens when the caller re-fetches.
func (s *Session) AddPlate(ctx context.Context, email, plate string) error {
	if plate == "" {
		return newValidationError("plate is required")
	}

	resp, err := s.client.doAuthRequest(
		ctx,
		http.MethodPost,
		"/car-plates/"+url.PathEscape(email),
		addPlateRequest{NewPlate: plate},
	)
	if err != nil {
		return err
	}

	return checkStatus2xx(resp)
}

// DeletePlate removes a plate via DELETE /car-plates/{email}/{plate} and
// returns the backend's post-delete list, which replaces the cache as the
// authoritative state. Requires a live credential.
func (s *Session) DeletePlate(ctx context.Context, email, plate string) ([]string, error) {
	if plate == "" {
		return nil, newValidationError("plate is required")
	}

	resp, err := s.client.doAuthRequest(
		ctx,
		http.MethodDelete,
		"/car-plates/"+url.PathEscape(email)+"/"+url.PathEscape(plate),
		nil,
	)
	if err != nil {
		return nil, err
	}
	if err := checkStatus2xx(resp); err != nil {
		return nil, err
	}

	return s.client.FetchPlates(ctx, email), nil
}

// Reconcile brings the backend's plate list up to a locally edited desired
// list by issuing one add-call per plate not already present. Plate identity
// is exact string match. Individual add failures are logged and skipped -
// partial success is acceptable, and the caller re-fetches afterwards to
// learn the true resulting list. No delete reconciliation happens here;
// removing a plate is an explicit DeletePlate.
func (s *Session) Reconcile(ctx context.Context, email string, desired []string) error {
	current := s.client.FetchPlates(ctx, email)

	present := make(map[string]bool, len(current))
	for _, plate := range current {
		present[plate] = true
	}

	for _, plate := range desired {
		if plate == "" || present[plate] {
			continue
		}
		// Duplicate entries in desired are absorbed here too.
		present[plate] = true

		if err := s.client.ReconcileLimit.Wait(ctx); err != nil {
			return newNetworkError(err)
		}
		if err := s.AddPlate(ctx, email, plate); err != nil {
			// Losing the credential fails every remaining add the same way;
			// surface it instead of logging it once per plate.
			if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrSessionExpired) {
				return err
			}
			s.client.Logger.Warn("failed to add plate during reconcile",
				"email", NormalizeEmail(email), "plate", plate, "error", err)
		}
	}

	return nil
}
