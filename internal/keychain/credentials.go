package keychain

import (
	"context"
	"errors"
	"fmt"

	"github.com/benaskins/seedkeeper/internal/seed"
)

// DefaultCredentialKey is the store key holding the identities blob.
const DefaultCredentialKey = "wallet/credentials"

// Credentials exposes the identities blob kept under one key of a Store.
// It never mutates the store on the read path and is safe to share.
type Credentials struct {
	store Store
	key   string
}

// NewCredentials reads and writes the blob under key. An empty key selects
// DefaultCredentialKey.
func NewCredentials(store Store, key string) *Credentials {
	if key == "" {
		key = DefaultCredentialKey
	}
	return &Credentials{store: store, key: key}
}

// Key returns the store key the blob lives under.
func (c *Credentials) Key() string {
	return c.key
}

// Retrieve loads the identities blob. It fails with ErrNotFound, ErrLocked or
// a wrapped I/O error, and returns ctx.Err() when cancelled before or while
// the store answered.
func (c *Credentials) Retrieve(ctx context.Context) (seed.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := c.store.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("retrieving credentials: %w", err)
	}
	blob := seed.Blob(val)

	if err := ctx.Err(); err != nil {
		blob.Zero()
		return nil, err
	}
	return blob, nil
}

// Import stores blob, replacing any existing credentials. Every identity's
// seed must be extractable, so nothing is stored that view would later
// reject as malformed.
func (c *Credentials) Import(blob seed.Blob) error {
	if err := seed.Validate(blob); err != nil {
		return fmt.Errorf("importing credentials: %w", err)
	}
	if err := c.store.Set(c.key, blob); err != nil {
		return fmt.Errorf("importing credentials: %w", err)
	}
	return nil
}

// Identities lists identity names held in the store, in index order.
func (c *Credentials) Identities(ctx context.Context) ([]string, error) {
	blob, err := c.Retrieve(ctx)
	if err != nil {
		return nil, err
	}
	defer blob.Zero()
	return seed.Names(blob)
}

// Remove deletes the stored credentials. Removing absent credentials is not
// an error.
func (c *Credentials) Remove() error {
	if err := c.store.Delete(c.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
