package goroutine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManagerCollectsErrors(t *testing.T) {
	// Arrange
	g := NewManager(2)
	boom := errors.New("boom")

	// Act
	okA := g.Go(context.Background(), func(context.Context) error { return nil })
	okB := g.Go(context.Background(), func(context.Context) error { return boom })
	err := g.Wait(context.Background())

	// Assert
	if !okA || !okB {
		t.Fatalf("expected both tasks to start")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected collected error, got %v", err)
	}
}

func TestManagerRecoversPanic(t *testing.T) {
	g := NewManager(1)
	g.Go(context.Background(), func(context.Context) error { panic("boom") })

	if err := g.Wait(context.Background()); !errors.Is(err, ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
}

func TestManagerLimit(t *testing.T) {
	// Arrange
	g := NewManager(1)
	release := make(chan struct{})
	g.Go(context.Background(), func(context.Context) error {
		<-release
		return nil
	})

	// Act
	started := g.Go(context.Background(), func(context.Context) error { return nil })
	close(release)

	// Assert
	if started {
		t.Fatal("expected second task to be rejected at capacity")
	}
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestManagerClosedAndCanceled(t *testing.T) {
	g := NewManager(1)
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatal("expected closed manager to reject tasks")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if NewManager(1).Go(ctx, func(context.Context) error { return nil }) {
		t.Fatal("expected canceled context to reject tasks")
	}
}

func TestManagerWaitTimeout(t *testing.T) {
	// Arrange
	g := NewManager(1)
	release := make(chan struct{})
	defer close(release)
	g.Go(context.Background(), func(context.Context) error {
		<-release
		return nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Act
	err := g.Wait(ctx)

	// Assert
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
