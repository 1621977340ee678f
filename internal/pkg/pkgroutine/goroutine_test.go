package pkgroutine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), "first", func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), "second", func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if joined == nil {
		t.Fatalf("expected errors")
	}
	if !errors.Is(joined, errOne) {
		t.Fatalf("expected errOne to be present")
	}
	if !errors.Is(joined, errTwo) {
		t.Fatalf("expected errTwo to be present")
	}
	if !strings.Contains(joined.Error(), "first: one") {
		t.Fatalf("expected task name in error, got %q", joined.Error())
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), "boom", func(ctx context.Context) error {
		panic("boom")
	})

	err := mgr.Wait()
	if err == nil || !strings.Contains(err.Error(), "boom: panic: boom") {
		t.Fatalf("expected panic error, got %v", err)
	}
}

func TestManagerSkipsCanceledContext(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	mgr.Go(ctx, "skipped", func(ctx context.Context) error {
		ran = true
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ran {
		t.Fatalf("expected task not to run")
	}
}

func TestManagerRunsAfterSlotFrees(t *testing.T) {
	mgr := NewManager(1)
	release := make(chan struct{})

	mgr.Go(context.Background(), "holder", func(ctx context.Context) error {
		<-release
		return nil
	})
	close(release)
	mgr.Go(context.Background(), "next", func(ctx context.Context) error {
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
