package parksdk

import (
	"context"
	"net/http"
)

// Register creates a new account via POST /register/. On success the
// submitted data seeds the profile cache for that email, so the profile
// screen can render before the backend is consulted again. Registration does
// not log the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, newValidationError("name, email and password are required")
	}
	if req.Role == "" {
		req.Role = "user"
	}
	if req.CarPlateIDs == nil {
		req.CarPlateIDs = []string{}
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/register/", req)
	if err != nil {
		return nil, err
	}

	var regResp RegisterResponse
	if err := decodeJSON(resp, &regResp); err != nil {
		return nil, err
	}

	c.seedProfile(ctx, Profile{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.Phone,
		CarPlateIDs: req.CarPlateIDs,
	})

	return &regResp, nil
}

// Login authenticates via POST /login/ and returns an authenticated Session.
// On success the credential is persisted and the returned user record seeds
// the profile cache, unless a locally edited entry is still awaiting sync.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, newValidationError("email and password are required")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/login/", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp); err != nil {
		return nil, err
	}

	cred := Credential{Token: loginResp.AccessToken, TokenType: loginResp.TokenType}
	if err := c.Creds.StoreCredential(ctx, cred); err != nil {
		return nil, err
	}

	if loginResp.User != nil {
		existing, loadErr := c.Profiles.LoadProfile(ctx, loginResp.User.Email)
		if loadErr == nil && existing != nil && existing.NeedsSync {
			// An unpushed local edit wins over the server snapshot; the
			// pending sync pass will reconcile it.
			c.Logger.Debug("login kept locally edited profile",
				"email", NormalizeEmail(loginResp.User.Email))
		} else {
			c.seedProfile(ctx, Profile{
				Name:        loginResp.User.Name,
				Email:       loginResp.User.Email,
				PhoneNumber: loginResp.User.Phone,
				CarPlateIDs: plateList(loginResp.User.CarPlateIDs),
			})
		}
		email = loginResp.User.Email
	}

	return &Session{client: c, email: email}, nil
}

// ResumeSession returns a Session backed by the previously stored
// credential, or ErrNotAuthenticated when none is stored. The email ties the
// session to its cached profile and plate list.
func (c *Client) ResumeSession(ctx context.Context, email string) (*Session, error) {
	cred, err := c.Creds.Credential(ctx)
	if err != nil || cred.IsZero() {
		return nil, ErrNotAuthenticated
	}
	return &Session{client: c, email: email}, nil
}

// seedProfile writes a backend-confirmed profile into the cache. Cache write
// failures are logged, not surfaced: the remote operation already succeeded
// and the cache is only an acceleration.
func (c *Client) seedProfile(ctx context.Context, p Profile) {
	if err := c.Profiles.SaveProfile(ctx, p.Email, p); err != nil {
		c.Logger.Warn("failed to cache profile",
			"email", NormalizeEmail(p.Email), "error", err)
	}
}

// plateList normalizes a possibly-nil wire list to an empty slice.
func plateList(plates []string) []string {
	if plates == nil {
		return []string{}
	}
	return plates
}
