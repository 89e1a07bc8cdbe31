// Package logbuf captures log output while the terminal UI owns the screen.
// Lines are kept in a fixed-size ring and replayed once the UI exits.
package logbuf

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Ring is a thread-safe ring buffer holding the last N log lines.
// It implements io.Writer so a slog handler can write into it.
type Ring struct {
	mu      sync.Mutex
	lines   []string
	size    int
	pos     int
	full    bool
	dropped int
	partial bytes.Buffer
}

// New creates a ring buffer that keeps the last n lines. n < 1 is treated as 1.
func New(n int) *Ring {
	if n < 1 {
		n = 1
	}
	return &Ring{
		lines: make([]string, n),
		size:  n,
	}
}

// Write splits p on newlines and stores each complete line. A trailing
// fragment is held until its newline arrives.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.partial.Write(p)
	for {
		line, err := r.partial.ReadString('\n')
		if err != nil {
			r.partial.Reset()
			r.partial.WriteString(line)
			break
		}
		r.add(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

func (r *Ring) add(line string) {
	if r.full {
		r.dropped++
	}
	r.lines[r.pos] = line
	r.pos = (r.pos + 1) % r.size
	if r.pos == 0 {
		r.full = true
	}
}

// Lines returns the stored lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]string(nil), r.lines[:r.pos]...)
	}
	out := make([]string, 0, r.size)
	out = append(out, r.lines[r.pos:]...)
	return append(out, r.lines[:r.pos]...)
}

// Dropped reports how many lines were overwritten.
func (r *Ring) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// WriteTo replays the captured lines to w, prefixed with a note when older
// lines were lost.
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if d := r.Dropped(); d > 0 {
		n, err := fmt.Fprintf(w, "(%d earlier log lines dropped)\n", d)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	for _, line := range r.Lines() {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Handler returns a text slog handler writing into r at the given level.
func (r *Ring) Handler(level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(r, &slog.HandlerOptions{Level: level})
}
