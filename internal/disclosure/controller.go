// Package disclosure gates revealing a wallet seed behind a password check.
//
// The Controller retrieves the seed from the credential store only after the
// candidate password matches the reference, holds it only while Revealed, and
// purges it on every hide, index change, backgrounding or focus loss. Each
// redaction advances an epoch; a retrieval that completes under an older
// epoch is discarded, so a late result can never bring a seed back on screen.
package disclosure

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"

	"github.com/benaskins/seedkeeper/internal/audit"
	"github.com/benaskins/seedkeeper/internal/lifecycle"
	"github.com/benaskins/seedkeeper/internal/seed"
)

const defaultEventBuffer = 16

// Retriever loads the identities blob from the credential store.
type Retriever interface {
	Retrieve(ctx context.Context) (seed.Blob, error)
}

// ExtractFunc pulls the secret for one identity out of a blob.
type ExtractFunc func(blob seed.Blob, index int) (*seed.Secret, error)

// Controller owns the disclosure state machine. All methods are safe for
// concurrent use; each transition is applied atomically.
type Controller struct {
	store     Retriever
	extract   ExtractFunc
	reference string

	mu     sync.Mutex
	phase  Phase
	secret *seed.Secret
	index  int
	epoch  uint64
	cancel context.CancelFunc // in-flight retrieval, nil otherwise
	closed bool

	base       context.Context
	baseCancel context.CancelFunc
	events     chan Event
	inflight   sync.WaitGroup

	logger *slog.Logger
	audit  *audit.Logger
}

// Option configures a Controller.
type Option func(*controllerConfig)

type controllerConfig struct {
	ctx         context.Context
	logger      *slog.Logger
	audit       *audit.Logger
	index       int
	eventBuffer int
}

// WithContext sets the parent of every retrieval context. Cancelling it
// cancels in-flight retrievals but does not redact; call Close for that.
func WithContext(ctx context.Context) Option {
	return func(c *controllerConfig) { c.ctx = ctx }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *controllerConfig) { c.logger = l }
}

// WithAudit records disclosures, rejections and redactions.
func WithAudit(l *audit.Logger) Option {
	return func(c *controllerConfig) { c.audit = l }
}

// WithIndex sets the initial active wallet identity.
func WithIndex(i int) Option {
	return func(c *controllerConfig) { c.index = i }
}

// WithEventBuffer sets the capacity of the Events channel.
func WithEventBuffer(n int) Option {
	return func(c *controllerConfig) {
		if n > 0 {
			c.eventBuffer = n
		}
	}
}

// New creates a controller in the Hidden phase. reference is the password
// a candidate must equal exactly; it is owned by the caller's authentication
// component and never logged.
func New(store Retriever, extract ExtractFunc, reference string, opts ...Option) *Controller {
	cfg := controllerConfig{
		ctx:         context.Background(),
		logger:      slog.With("component", "disclosure"),
		eventBuffer: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if extract == nil {
		extract = seed.Extract
	}

	base, cancel := context.WithCancel(cfg.ctx)
	return &Controller{
		store:      store,
		extract:    extract,
		reference:  reference,
		index:      cfg.index,
		base:       base,
		baseCancel: cancel,
		events:     make(chan Event, cfg.eventBuffer),
		logger:     cfg.logger,
		audit:      cfg.audit,
	}
}

// Events delivers feedback for the presentation layer. It is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Snapshot returns the current read projection, seed included while
// Revealed. Each call copies the seed into a new string; callers rendering
// repeatedly should use State and take one Snapshot per EventRevealed.
func (c *Controller) Snapshot() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := Projection{Phase: c.phase, Index: c.index}
	if c.phase == Revealed {
		p.Seed = c.secret.Reveal()
	}
	return p
}

// State is Snapshot without the seed.
func (c *Controller) State() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Projection{Phase: c.phase, Index: c.index}
}

// SubmitPassword starts a disclosure for the active index. An empty
// candidate, or a submission while a disclosure is already in flight or
// shown, is ignored. A mismatch emits EventWrongPassword without touching
// the credential store.
func (c *Controller) SubmitPassword(candidate string) {
	if candidate == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.phase != Hidden {
		c.logger.Debug("ignoring password submission", "phase", c.phase)
		return
	}

	// The entered copy lives only for the comparison.
	entered := []byte(candidate)
	match := subtle.ConstantTimeCompare(entered, []byte(c.reference)) == 1
	clear(entered)

	if !match {
		c.phase = Denied
		c.logger.Info("seed disclosure denied", "index", c.index)
		c.audit.Log(audit.Entry{
			Action: audit.ActionPasswordRejected,
			Index:  audit.IndexOf(c.index),
			Actor:  "controller",
		})
		c.emit(Event{Kind: EventWrongPassword, Index: c.index, Failure: PasswordMismatch})
		c.phase = Hidden
		return
	}

	c.phase = Authenticating
	c.epoch++
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel

	c.logger.Debug("retrieving credentials", "index", c.index, "epoch", c.epoch)
	c.inflight.Add(1)
	go c.retrieve(ctx, c.epoch, c.index)
}

// RequestHide redacts unconditionally. It always succeeds and is idempotent.
func (c *Controller) RequestHide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redact(TriggerHide)
}

// SetActiveIndex changes the targeted wallet identity. A change redacts any
// shown or pending seed first; an unchanged index is a no-op.
func (c *Controller) SetActiveIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || index == c.index {
		return
	}
	c.index = index
	c.redact(TriggerIndexChange)
}

// OnLifecycleEvent redacts on every event that leaves the foreground or
// focus. Foreground and focus events are no-ops.
func (c *Controller) OnLifecycleEvent(ev lifecycle.Event) {
	if !ev.Redacts() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redact(Trigger(ev.String()))
}

// Close redacts, cancels any in-flight retrieval and closes Events. Later
// calls on the controller are no-ops. Close does not wait for the credential
// store to return.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.redact(TriggerTeardown)
	c.closed = true
	c.baseCancel()
	close(c.events)
}

// redact must be called with c.mu held. It never fails and does not depend
// on the prior phase.
func (c *Controller) redact(trigger Trigger) {
	prev := c.phase
	c.epoch++

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.secret != nil {
		c.secret.Zero()
		c.secret = nil
	}
	c.phase = Hidden

	if prev == Hidden {
		return
	}
	c.logger.Info("seed redacted", "index", c.index, "trigger", trigger, "from", prev)
	c.audit.Log(audit.Entry{
		Action:  audit.ActionSeedRedact,
		Index:   audit.IndexOf(c.index),
		Actor:   "controller",
		Trigger: string(trigger),
	})
	c.emit(Event{Kind: EventRedacted, Index: c.index, Trigger: trigger})
}

func (c *Controller) retrieve(ctx context.Context, epoch uint64, index int) {
	defer c.inflight.Done()

	blob, err := c.store.Retrieve(ctx)
	var secret *seed.Secret
	if err == nil {
		if blob.Empty() {
			err = fmt.Errorf("%w: empty credential blob", seed.ErrMalformed)
		} else {
			secret, err = c.extract(blob, index)
		}
		blob.Zero()
	}
	if err == nil && secret == nil {
		err = fmt.Errorf("%w: no secret for index %d", seed.ErrMalformed, index)
	}

	c.complete(epoch, index, secret, err)
}

func (c *Controller) complete(epoch uint64, index int, secret *seed.Secret, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || epoch != c.epoch || c.phase != Authenticating {
		secret.Zero()
		c.logger.Debug("discarding stale retrieval", "epoch", epoch, "current", c.epoch)
		return
	}

	c.cancel()
	c.cancel = nil

	if err != nil {
		kind := classify(err)
		c.phase = Hidden
		c.logger.Warn("seed retrieval failed", "index", index, "kind", kind, "error", err)
		c.audit.Log(audit.Entry{
			Action: audit.ActionRetrievalFailed,
			Index:  audit.IndexOf(index),
			Actor:  "controller",
			Error:  err.Error(),
		})
		c.emit(Event{Kind: EventRetrievalFailed, Index: index, Failure: kind, Err: err})
		return
	}

	c.secret = secret
	c.phase = Revealed
	c.logger.Info("seed revealed", "index", index)
	c.audit.Log(audit.Entry{
		Action: audit.ActionSeedDisclose,
		Index:  audit.IndexOf(index),
		Actor:  "controller",
	})
	c.emit(Event{Kind: EventRevealed, Index: index})
}

// emit must be called with c.mu held and the controller open. It never
// blocks a transition. When the buffer is full, a failure event evicts the
// oldest queued Revealed or Redacted event; anything else is dropped.
func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
		return
	default:
	}
	if !ev.failure() {
		c.logger.Warn("dropping disclosure event, buffer full", "event", ev.Kind)
		return
	}

	// c.mu makes this the only sender, so draining and refilling keeps order.
	queued := make([]Event, 0, cap(c.events)+1)
drain:
	for {
		select {
		case q := <-c.events:
			queued = append(queued, q)
		default:
			break drain
		}
	}
	if len(queued) == cap(c.events) {
		evict := -1
		for i, q := range queued {
			if !q.failure() {
				evict = i
				break
			}
		}
		if evict < 0 {
			c.logger.Warn("dropping disclosure failure, buffer full of failures", "event", ev.Kind)
			ev = Event{}
		} else {
			c.logger.Warn("evicting disclosure event for a failure", "evicted", queued[evict].Kind, "event", ev.Kind)
			queued = append(queued[:evict], queued[evict+1:]...)
		}
	}
	if ev.Kind != 0 {
		queued = append(queued, ev)
	}
	for _, q := range queued {
		c.events <- q
	}
}
