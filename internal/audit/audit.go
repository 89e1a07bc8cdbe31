// Package audit provides append-only structured logging for seed disclosure
// and credential access.
//
// Every disclosure, rejection, redaction and credential read or write is
// recorded to ~/.seedkeeper/audit.log as newline-delimited JSON. Entries
// never carry seed content or passwords.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Action describes what happened.
type Action string

const (
	ActionCredentialRead   Action = "credential_read"
	ActionCredentialWrite  Action = "credential_write"
	ActionCredentialDelete Action = "credential_delete"
	ActionSeedDisclose     Action = "seed_disclose"
	ActionSeedRedact       Action = "seed_redact"
	ActionPasswordRejected Action = "password_rejected"
	ActionRetrievalFailed  Action = "retrieval_failed"
)

// Entry is a single audit log record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Action    Action    `json:"action"`
	Key       string    `json:"key,omitempty"`
	Index     *int      `json:"index,omitempty"` // wallet identity, when the action targets one
	Actor     string    `json:"actor,omitempty"`   // "cli", "controller"
	Trigger   string    `json:"trigger,omitempty"` // "hide", "background", "index_change", ...
	Error     string    `json:"error,omitempty"`
}

// IndexOf returns a pointer suitable for Entry.Index.
func IndexOf(i int) *int {
	return &i
}

// Logger writes audit entries to an append-only file.
type Logger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewLogger creates or opens an audit log file for appending.
func NewLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &Logger{file: f, path: path}, nil
}

// Log writes an audit entry. A nil Logger discards entries.
func (l *Logger) Log(entry Entry) error {
	if l == nil {
		return nil
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the audit log file. Closing a nil Logger is a no-op.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}
