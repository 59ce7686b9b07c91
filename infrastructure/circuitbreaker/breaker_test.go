package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errDependency = errors.New("dependency down")

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 2, Timeout: time.Minute})
	ctx := context.Background()

	for range 2 {
		_ = b.Execute(ctx, func() error { return errDependency })
	}

	if b.State() != StateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}

	called := false
	err := b.Execute(ctx, func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("err = %v, want ErrCircuitOpen", err)
	}
	if called {
		t.Error("fn was called while circuit open")
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	t.Parallel()

	current := time.Unix(1_700_000_000, 0)
	b := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Second})
	b.now = func() time.Time { return current }

	ctx := context.Background()
	_ = b.Execute(ctx, func() error { return errDependency })
	if b.State() != StateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}

	current = current.Add(2 * time.Second)
	if err := b.Execute(ctx, func() error { return nil }); err != nil {
		t.Fatalf("probe call error = %v", err)
	}
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed after successful probe", b.State())
	}
}

func TestBreaker_IgnoresNonFailures(t *testing.T) {
	t.Parallel()

	notCounted := errors.New("client error")
	b := New(Config{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return !errors.Is(err, notCounted) },
	})

	_ = b.Execute(context.Background(), func() error { return notCounted })
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestBreaker_CancelledCallNotCounted(t *testing.T) {
	t.Parallel()

	b := New(Config{FailureThreshold: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = b.Execute(ctx, func() error { return ctx.Err() })
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
}
