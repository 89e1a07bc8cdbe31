//go:build unix

package lifecycle

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// WatchSignals translates job-control and hangup signals into lifecycle
// events until ctx is cancelled:
//
//	SIGTSTP -> Background, then the process suspends as it normally would
//	SIGCONT -> Foreground
//	SIGHUP  -> Inactive (controlling terminal went away)
func WatchSignals(ctx context.Context, sink Sink) error {
	return watchSignals(ctx, sink, nil)
}

func watchSignals(ctx context.Context, sink Sink, ready func()) error {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, unix.SIGTSTP, unix.SIGCONT, unix.SIGHUP)
	defer signal.Stop(ch)

	logger := slog.With("component", "lifecycle")
	if ready != nil {
		ready()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			logger.Debug("lifecycle signal", "signal", sig)
			switch sig {
			case unix.SIGTSTP:
				sink.OnLifecycleEvent(Background)
				if !suspend(ctx, ch) {
					return nil
				}
				sink.OnLifecycleEvent(Foreground)
			case unix.SIGCONT:
				sink.OnLifecycleEvent(Foreground)
			case unix.SIGHUP:
				sink.OnLifecycleEvent(Inactive)
			}
		}
	}
}

// suspend stops the process group the way the default SIGTSTP action would,
// once the sink has redacted, and blocks until SIGCONT. It reports false if
// ctx ended first.
func suspend(ctx context.Context, ch chan os.Signal) bool {
	signal.Reset(unix.SIGTSTP)
	defer signal.Notify(ch, unix.SIGTSTP)

	_ = unix.Kill(0, unix.SIGTSTP)
	for {
		select {
		case <-ctx.Done():
			return false
		case sig := <-ch:
			if sig == unix.SIGCONT {
				return true
			}
		}
	}
}
