// Package seed holds disclosed wallet seeds and the credential blob they are
// extracted from.
//
// A Secret redacts itself under fmt, JSON and text encoding so a seed can
// never end up in a log line or a serialized state file by accident.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret is a seed disclosed for one wallet identity.
type Secret struct {
	data   []byte
	index  int
	locked bool
}

// newSecret takes ownership of content.
func newSecret(content []byte, index int) *Secret {
	s := &Secret{data: content, index: index}
	s.locked = lockMemory(s.data)
	return s
}

// Index returns the wallet identity the secret belongs to.
func (s *Secret) Index() int {
	if s == nil {
		return -1
	}
	return s.index
}

// Len returns the content length, zero after Zero.
func (s *Secret) Len() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// Reveal returns the content for display. Go strings cannot be wiped, so
// callers must not hold the result past the next redaction.
func (s *Secret) Reveal() string {
	if s == nil {
		return ""
	}
	return string(s.data)
}

// Zero overwrites the content and drops it. Safe on nil and when called twice.
func (s *Secret) Zero() {
	if s == nil || s.data == nil {
		return
	}
	clear(s.data)
	if s.locked {
		unlockMemory(s.data)
		s.locked = false
	}
	s.data = nil
}

// String redacts the secret for fmt.Print* convenience.
func (s *Secret) String() string { return redacted }

// Format implements fmt.Formatter so %v, %#v, %s and %q are all redacted.
func (s *Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON redacts the secret in JSON output.
func (s *Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// MarshalText redacts the secret for text encoders.
func (s *Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }
