package parksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/smartpark/parkmobile/pkg/idx"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// newRequest builds an HTTP request with the JSON body (nil for none) and a
// fresh X-Request-ID for log correlation.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	payload any,
) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", idx.New().String())

	return req, nil
}

// doRequest performs an unauthenticated request. Transport failures come
// back as network-kind APIErrors so every caller normalizes the same way.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	payload any,
) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}

	return resp, nil
}

// doAuthRequest performs a request with the stored bearer credential
// attached. It fails fast with ErrNotAuthenticated when no credential is
// stored, without touching the network.
//
// A 401 response is the single place session expiry is detected: the stored
// credential is cleared and ErrSessionExpired is returned.
func (c *Client) doAuthRequest(
	ctx context.Context,
	method, path string,
	payload any,
) (*http.Response, error) {
	cred, err := c.Creds.Credential(ctx)
	if err != nil || cred.IsZero() {
		return nil, ErrNotAuthenticated
	}

	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", cred.TokenType+" "+cred.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if clearErr := c.Creds.ClearCredential(ctx); clearErr != nil {
			c.Logger.Warn("failed to clear rejected credential", "error", clearErr)
		}
		c.Logger.Info("session expired, credential cleared",
			"method", method, "path", path)
		return nil, ErrSessionExpired
	}

	return resp, nil
}

// decodeJSON decodes a 2xx response into target and closes the body. Non-2xx
// responses come back as typed APIErrors parsed from the backend's
// {"detail": ...} payload.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	if err := parseErrorResponse(resp, body); err != nil {
		return err
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return newNetworkError(fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// checkStatus2xx closes the body and returns a typed error unless the
// response status is in the 2xx range.
func checkStatus2xx(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}

	return nil
}
