//go:build unix

package lifecycle

import (
	"context"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestWatchSignalsTranslatesHangupAndContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 4)
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- watchSignals(ctx, SinkFunc(func(e Event) { events <- e }), func() { close(ready) })
	}()
	<-ready

	for _, tc := range []struct {
		sig  unix.Signal
		want Event
	}{
		{unix.SIGHUP, Inactive},
		{unix.SIGCONT, Foreground},
	} {
		if err := unix.Kill(unix.Getpid(), tc.sig); err != nil {
			t.Fatalf("kill %v: %v", tc.sig, err)
		}
		select {
		case got := <-events:
			if got != tc.want {
				t.Errorf("%v: got %v, want %v", tc.sig, got, tc.want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%v: no event delivered", tc.sig)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchSignals: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
