package state

import (
	"context"
	"testing"
	"time"
)

func TestClock_TickSetsReservedVariables(t *testing.T) {
	store, _ := newTestStore(t)
	clock := NewClock(store, time.Minute)

	now := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	clock.Tick(now)

	vars := store.Variables()
	if vars[VarDate] != "2024-03-15" {
		t.Errorf("date = %q, want %q", vars[VarDate], "2024-03-15")
	}
	if vars[VarTime] != "09:30:45" {
		t.Errorf("time = %q, want %q", vars[VarTime], "09:30:45")
	}
	if vars[VarTimestamp] == "" {
		t.Error("timestamp not set")
	}
}

func TestClock_TickOverwritesExternalWrite(t *testing.T) {
	store, _ := newTestStore(t)
	clock := NewClock(store, time.Minute)

	// Reserved variables are not caller-owned: the next tick wins.
	store.SetVariable(VarTime, "not a time")
	clock.Tick(time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC))

	if got := store.Variable(VarTime); got != "09:30:45" {
		t.Errorf("time = %q, want tick value", got)
	}
}

func TestClock_TickPersists(t *testing.T) {
	store, repo := newTestStore(t)
	clock := NewClock(store, time.Minute)
	before := repo.saveCount()

	clock.Tick(time.Now())

	// Each of the three variable writes follows the mutate -> persist path.
	if got := repo.saveCount(); got != before+3 {
		t.Errorf("save count = %d, want %d", got, before+3)
	}
}

func TestClock_RunStopsOnCancel(t *testing.T) {
	store, _ := newTestStore(t)
	clock := NewClock(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		clock.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock did not stop after context cancellation")
	}
}
