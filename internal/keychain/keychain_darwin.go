//go:build darwin

package keychain

import (
	"errors"
	"fmt"

	gokeychain "github.com/keybase/go-keychain"
)

const (
	// ServiceName is the Keychain service attribute for all seedkeeper items.
	ServiceName = "com.seedkeeper"
)

// SystemStore provides CRUD operations for credentials in macOS Keychain.
type SystemStore struct {
	service string
}

// NewSystemStore creates a new Keychain-backed credential store.
func NewSystemStore() *SystemStore {
	return &SystemStore{service: ServiceName}
}

// Set stores a credential in the Keychain. Overwrites if it already exists.
func (s *SystemStore) Set(key string, value []byte) error {
	// update = delete + add
	_ = s.Delete(key)

	item := gokeychain.NewGenericPassword(
		s.service,
		key,
		fmt.Sprintf("seedkeeper: %s", key),
		value,
		"",
	)
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)

	if err := gokeychain.AddItem(item); err != nil {
		return fmt.Errorf("keychain add %q: %w", key, mapError(err))
	}
	return nil
}

// Get retrieves a credential from the Keychain. The caller owns the result.
func (s *SystemStore) Get(key string) ([]byte, error) {
	data, err := gokeychain.GetGenericPassword(s.service, key, "", "")
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("keychain get %q: %w", key, mapError(err))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return data, nil
}

// List returns all credential keys stored by seedkeeper.
func (s *SystemStore) List() ([]string, error) {
	accounts, err := gokeychain.GetGenericPasswordAccounts(s.service)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain list: %w", mapError(err))
	}
	return accounts, nil
}

// Delete removes a credential from the Keychain.
func (s *SystemStore) Delete(key string) error {
	err := gokeychain.DeleteGenericPasswordItem(s.service, key)
	if err != nil && !errors.Is(err, gokeychain.ErrorItemNotFound) {
		return fmt.Errorf("keychain delete %q: %w", key, mapError(err))
	}
	return nil
}

// mapError folds the Keychain's "user interaction not allowed" status, which
// is what a locked keychain reports, into ErrLocked.
func mapError(err error) error {
	if errors.Is(err, gokeychain.ErrorInteractionNotAllowed) {
		return fmt.Errorf("%w: %v", ErrLocked, err)
	}
	return err
}
