// Package memory provides an in-memory cache driver, primarily for tests.
// It implements the same contract as the sqlite driver: independent keys,
// full-record overwrites, last write wins.
package memory

import (
	"context"
	"sync"

	"github.com/smartpark/parkmobile/pkg/parksdk"
)

// Cache is an in-memory implementation of parksdk.Cache. Safe for
// concurrent use.
type Cache struct {
	mu       sync.RWMutex
	cred     parksdk.Credential
	profiles map[string]parksdk.Profile
	plates   map[string][]string
}

var _ parksdk.Cache = (*Cache)(nil)

// New returns an empty in-memory cache.
func New() *Cache {
	return &Cache{
		profiles: make(map[string]parksdk.Profile),
		plates:   make(map[string][]string),
	}
}

func (c *Cache) StoreCredential(_ context.Context, cred parksdk.Credential) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = cred
	return nil
}

func (c *Cache) Credential(_ context.Context) (parksdk.Credential, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cred, nil
}

func (c *Cache) ClearCredential(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = parksdk.Credential{}
	return nil
}

func (c *Cache) LoadProfile(_ context.Context, email string) (*parksdk.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[parksdk.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *Cache) SaveProfile(_ context.Context, email string, p parksdk.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[parksdk.NormalizeEmail(email)] = p
	return nil
}

func (c *Cache) PendingProfiles(_ context.Context) ([]parksdk.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var pending []parksdk.Profile
	for _, p := range c.profiles {
		if p.NeedsSync {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

func (c *Cache) CachePlates(_ context.Context, email string, plates []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plates[parksdk.NormalizeEmail(email)] = append([]string(nil), plates...)
	return nil
}

func (c *Cache) CachedPlates(_ context.Context, email string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	plates, ok := c.plates[parksdk.NormalizeEmail(email)]
	if !ok {
		return []string{}, nil
	}
	return append([]string(nil), plates...), nil
}
