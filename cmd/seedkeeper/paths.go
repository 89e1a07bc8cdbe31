package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/benaskins/seedkeeper/internal/audit"
	"github.com/benaskins/seedkeeper/internal/keychain"
)

// openAudit opens the configured audit log, creating its directory with
// owner-only permissions. An empty path disables auditing.
func openAudit(path string) (*audit.Logger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}
	return audit.NewLogger(path)
}

// openCredentials wires the system keychain behind the audit trail.
func openCredentials(actor string) (*keychain.Credentials, *audit.Logger, error) {
	auditLog, err := openAudit(cfg.AuditLog)
	if err != nil {
		return nil, nil, err
	}
	store := keychain.NewAuditedStore(keychain.NewSystemStore(), auditLog, actor)
	return keychain.NewCredentials(store, cfg.CredentialKey), auditLog, nil
}
