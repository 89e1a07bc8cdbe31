// Package lifecycle describes the host application's foreground and focus
// transitions and forwards them to whatever guards on-screen secrets.
//
// The package holds no global registration: hosts subscribe to their own
// signal source (OS signals, terminal focus reports) and hand each
// transition to a Sink.
package lifecycle

import "fmt"

// Event is a single lifecycle or focus transition.
type Event int

const (
	Foreground Event = iota + 1
	Background
	Inactive
	Focus
	Blur
)

var names = map[Event]string{
	Foreground: "foreground",
	Background: "background",
	Inactive:   "inactive",
	Focus:      "focus",
	Blur:       "blur",
}

func (e Event) String() string {
	if n, ok := names[e]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Redacts reports whether the event takes the host out of the foreground or
// out of focus. Unknown events redact.
func (e Event) Redacts() bool {
	return e != Foreground && e != Focus
}

// Sink receives lifecycle events.
type Sink interface {
	OnLifecycleEvent(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnLifecycleEvent(e Event) { f(e) }

// Fanout delivers each event to every sink in order.
type Fanout []Sink

func (f Fanout) OnLifecycleEvent(e Event) {
	for _, s := range f {
		s.OnLifecycleEvent(e)
	}
}
