package keychain

import (
	"fmt"

	"github.com/benaskins/seedkeeper/internal/audit"
)

// AuditedStore wraps a Store and records every credential access.
type AuditedStore struct {
	inner Store
	audit *audit.Logger
	actor string // "cli" or "controller"
}

// NewAuditedStore wraps an existing store with audit logging.
func NewAuditedStore(inner Store, auditLog *audit.Logger, actor string) *AuditedStore {
	return &AuditedStore{
		inner: inner,
		audit: auditLog,
		actor: actor,
	}
}

func (s *AuditedStore) Set(key string, value []byte) error {
	if err := s.inner.Set(key, value); err != nil {
		s.logFailure(audit.ActionCredentialWrite, key, err)
		return fmt.Errorf("audited store set: %w", err)
	}

	// Audit logging is best-effort: a failure to log does not block the operation.
	s.audit.Log(audit.Entry{
		Action: audit.ActionCredentialWrite,
		Key:    key,
		Actor:  s.actor,
	})
	return nil
}

func (s *AuditedStore) Get(key string) ([]byte, error) {
	val, err := s.inner.Get(key)
	if err != nil {
		s.logFailure(audit.ActionCredentialRead, key, err)
		return nil, fmt.Errorf("audited store get: %w", err)
	}

	s.audit.Log(audit.Entry{
		Action: audit.ActionCredentialRead,
		Key:    key,
		Actor:  s.actor,
	})
	return val, nil
}

func (s *AuditedStore) List() ([]string, error) {
	return s.inner.List()
}

func (s *AuditedStore) Delete(key string) error {
	if err := s.inner.Delete(key); err != nil {
		s.logFailure(audit.ActionCredentialDelete, key, err)
		return fmt.Errorf("audited store delete: %w", err)
	}

	s.audit.Log(audit.Entry{
		Action: audit.ActionCredentialDelete,
		Key:    key,
		Actor:  s.actor,
	})
	return nil
}

func (s *AuditedStore) logFailure(action audit.Action, key string, err error) {
	s.audit.Log(audit.Entry{
		Action: action,
		Key:    key,
		Actor:  s.actor,
		Error:  err.Error(),
	})
}
