package parksdk

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client is a client for the SmartPark reservation service. It provides the
// unauthenticated operations and creates authenticated Sessions. Local state
// lives behind the injected cache interfaces so tests can substitute an
// in-memory implementation.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Creds, Profiles and Plates are the three persisted key namespaces.
	// NewClient wires all three to a single Cache; they are separate fields
	// so a caller can split them if storage ever diverges.
	Creds    CredentialStore
	Profiles ProfileCache
	Plates   PlateCache

	// ReconcileLimit throttles the add-calls issued by Reconcile so a large
	// locally edited plate list does not hammer the backend. The default
	// burst absorbs typical edits without waiting.
	ReconcileLimit *rate.Limiter

	Logger *slog.Logger
}

// NewClient creates a client for the given backend base URL, backed by the
// given cache.
func NewClient(baseURL string, cache Cache) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Creds:          cache,
		Profiles:       cache,
		Plates:         cache,
		ReconcileLimit: rate.NewLimiter(rate.Limit(5), 5),
		Logger:         slog.Default(),
	}
}
