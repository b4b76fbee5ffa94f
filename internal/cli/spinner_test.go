package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner(context.Background(), "working...")
	s.start()
	time.Sleep(100 * time.Millisecond)
	s.stop()
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "working...")
	s.start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	// stop after cancellation must not hang or panic.
	s.stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner(context.Background(), "first")
	s.start()
	s.setMessage("second")
	time.Sleep(100 * time.Millisecond)
	s.stop()
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := newSpinner(context.Background(), "working...")
	s.start()
	s.stop()
	s.stop()
}
