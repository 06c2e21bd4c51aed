package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
)

func TestRealtime_PacesFrames(t *testing.T) {
	defer leaktest.Check(t)()

	s := NewRealtime().Pace(50)
	defer s.Stop()

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := s.Wait(ctx); err != nil {
			t.Fatalf("Wait %d failed: %v", i, err)
		}
	}
	// First frame is immediate, the other four are 20ms apart.
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("5 frames at 50fps took %v, expected at least ~80ms", elapsed)
	}
}

func TestRealtime_CancelWhileWaiting(t *testing.T) {
	defer leaktest.Check(t)()

	s := NewRealtime().Pace(1)
	defer s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := s.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("Wait did not return promptly after cancel")
	}
}

func TestRealtime_NonPositiveFPS(t *testing.T) {
	s := NewRealtime().Pace(0)
	defer s.Stop()

	if err := s.Wait(context.Background()); err != nil {
		t.Errorf("first Wait failed: %v", err)
	}
}

func TestImmediate(t *testing.T) {
	s := NewImmediate().Pace(30)
	defer s.Stop()

	for i := 0; i < 100; i++ {
		if err := s.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
