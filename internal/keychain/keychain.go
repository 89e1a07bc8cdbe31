// Package keychain provides the encrypted-at-rest credential store that holds
// wallet seeds, backed by macOS Keychain.
//
// Credentials are stored as generic passwords with:
//   - Service: "com.seedkeeper" (all seedkeeper items share this service)
//   - Account: the credential key (e.g. "wallet/credentials")
//   - Label: "seedkeeper: <key>" (for Keychain Access.app visibility)
//
// Items are scoped with kSecAttrAccessibleWhenUnlockedThisDeviceOnly:
// never synced to iCloud, never readable while the device is locked.
package keychain

import "errors"

var (
	// ErrNotFound is returned when a credential does not exist in the store.
	ErrNotFound = errors.New("credential not found")

	// ErrLocked is returned when the store refuses access because the device
	// or keychain is locked.
	ErrLocked = errors.New("credential store locked")
)

// Store is the interface for credential storage operations. Values are byte
// slices so callers can wipe them: Set does not retain value, and Get returns
// a fresh copy owned by the caller.
type Store interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	List() ([]string, error)
	Delete(key string) error
}
