package disclosure

import (
	"errors"
	"fmt"

	"github.com/benaskins/seedkeeper/internal/seed"
)

// Phase is the controller's disclosure state.
type Phase int

const (
	// Hidden holds no secret. Initial state, and where every redaction lands.
	Hidden Phase = iota
	// Authenticating has accepted a password and is waiting on the
	// credential store.
	Authenticating
	// Revealed holds the secret for the active index.
	Revealed
	// Denied is entered and left inside a single SubmitPassword call; it is
	// never visible in a Projection.
	Denied
)

func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case Authenticating:
		return "authenticating"
	case Revealed:
		return "revealed"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// FailureKind classifies why a disclosure did not happen.
type FailureKind int

const (
	// PasswordMismatch is a user input error, not a system fault.
	PasswordMismatch FailureKind = iota + 1
	// CredentialStoreUnavailable covers a locked store, missing credentials
	// and I/O faults.
	CredentialStoreUnavailable
	// MalformedCredentialData means the blob was empty or could not be parsed
	// for the active index.
	MalformedCredentialData
)

func (k FailureKind) String() string {
	switch k {
	case PasswordMismatch:
		return "password_mismatch"
	case CredentialStoreUnavailable:
		return "credential_store_unavailable"
	case MalformedCredentialData:
		return "malformed_credential_data"
	}
	return fmt.Sprintf("failure(%d)", int(k))
}

func classify(err error) FailureKind {
	if errors.Is(err, seed.ErrMalformed) {
		return MalformedCredentialData
	}
	return CredentialStoreUnavailable
}

// Trigger names what caused a redaction.
type Trigger string

const (
	TriggerHide        Trigger = "hide"
	TriggerIndexChange Trigger = "index_change"
	TriggerTeardown    Trigger = "teardown"
)

// EventKind identifies an Event.
type EventKind int

const (
	EventWrongPassword EventKind = iota + 1
	EventRetrievalFailed
	EventRevealed
	EventRedacted
)

func (k EventKind) String() string {
	switch k {
	case EventWrongPassword:
		return "wrong_password"
	case EventRetrievalFailed:
		return "retrieval_failed"
	case EventRevealed:
		return "revealed"
	case EventRedacted:
		return "redacted"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is feedback for the presentation layer. It never carries the secret.
type Event struct {
	Kind    EventKind
	Index   int
	Failure FailureKind // WrongPassword and RetrievalFailed
	Err     error       // RetrievalFailed
	Trigger Trigger     // Redacted
}

func (e Event) failure() bool {
	return e.Kind == EventWrongPassword || e.Kind == EventRetrievalFailed
}

// Projection is the read-only view handed to the presentation layer.
// From Snapshot, Seed is non-empty if and only if Phase is Revealed; from
// State it is always empty.
type Projection struct {
	Phase Phase
	Index int
	Seed  string
}

// Revealed reports whether the projection shows a seed.
func (p Projection) Revealed() bool {
	return p.Phase == Revealed
}
