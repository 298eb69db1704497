package parksdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ============================================================================
// Error Kinds
// ============================================================================

const (
	// ErrorKindValidation covers missing required local input, detected
	// before any network call is made.
	ErrorKindValidation = "validation"

	// ErrorKindNotAuthenticated covers protected operations attempted with
	// no stored credential. No network call is made.
	ErrorKindNotAuthenticated = "not_authenticated"

	// ErrorKindNetwork covers requests that could not complete at all.
	ErrorKindNetwork = "network"

	// ErrorKindRejected covers non-2xx responses carrying a backend detail
	// message.
	ErrorKindRejected = "rejected"

	// ErrorKindSessionExpired covers a 401 response on an authenticated
	// call. The stored credential is cleared before this is returned.
	ErrorKindSessionExpired = "session_expired"
)

// ============================================================================
// APIError - unified boundary error type
// ============================================================================

// APIError is the single error shape every boundary-crossing operation in
// this package returns. Callers branch on Kind rather than on string
// matching or per-call-site exception types.
type APIError struct {
	// StatusCode is the HTTP status code, when a response was received.
	StatusCode int `json:"-"`

	// Kind classifies the failure (see the ErrorKind constants).
	Kind string `json:"kind"`

	// Detail is a human-readable message, taken from the backend's
	// {"detail": ...} payload when available.
	Detail string `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is lets errors.Is match the predefined sentinel values by Kind, so
// callers can write errors.Is(err, parksdk.ErrSessionExpired) regardless of
// the Detail text a particular path filled in.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrNotAuthenticated is returned when a protected operation is
	// attempted without a stored credential.
	ErrNotAuthenticated = &APIError{
		Kind:   ErrorKindNotAuthenticated,
		Detail: "no authentication token found",
	}

	// ErrSessionExpired is returned when the backend rejects an
	// authenticated call with 401. The credential store has already been
	// cleared by the time callers see this.
	ErrSessionExpired = &APIError{
		StatusCode: http.StatusUnauthorized,
		Kind:       ErrorKindSessionExpired,
		Detail:     "authentication expired, please login again",
	}
)

func newValidationError(detail string) *APIError {
	return &APIError{Kind: ErrorKindValidation, Detail: detail}
}

func newNetworkError(err error) *APIError {
	return &APIError{Kind: ErrorKindNetwork, Detail: err.Error()}
}

// ============================================================================
// Error Parsing
// ============================================================================

// parseErrorResponse turns a non-2xx response body into a typed APIError.
// The backend reports failures as {"detail": "..."}; anything else falls
// back to the HTTP status text. Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var detail detailResponse
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       ErrorKindRejected,
			Detail:     detail.Detail,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       ErrorKindRejected,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
