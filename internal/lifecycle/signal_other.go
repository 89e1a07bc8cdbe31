//go:build !unix

package lifecycle

import "context"

// WatchSignals has no job-control signals to watch on this platform; it
// blocks until ctx is cancelled.
func WatchSignals(ctx context.Context, sink Sink) error {
	<-ctx.Done()
	return nil
}
