package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTracker(t *testing.T, window time.Duration) *Tracker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTrackerWithClient(client, window)
}

func TestSetTypingIsVisibleToOthers(t *testing.T) {
	tracker := newTestTracker(t, time.Second)
	ctx := context.Background()

	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("set typing: %v", err)
	}
	if err := tracker.SetTyping(ctx, 1, 11); err != nil {
		t.Fatalf("set typing: %v", err)
	}

	ids, err := tracker.ActiveTypers(ctx, 1, 11)
	if err != nil {
		t.Fatalf("active typers: %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Fatalf("expected only user 10, got %v", ids)
	}
}

func TestActiveTypersExcludesSelf(t *testing.T) {
	tracker := newTestTracker(t, time.Second)
	ctx := context.Background()

	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("set typing: %v", err)
	}
	ids, err := tracker.ActiveTypers(ctx, 1, 10)
	if err != nil {
		t.Fatalf("active typers: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list for self, got %v", ids)
	}
}

func TestActiveTypersExpireLazily(t *testing.T) {
	tracker := newTestTracker(t, 30*time.Millisecond)
	ctx := context.Background()

	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("set typing: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	ids, err := tracker.ActiveTypers(ctx, 1, 0)
	if err != nil {
		t.Fatalf("active typers: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected expired entry filtered, got %v", ids)
	}
}

func TestSetTypingRefreshesWindow(t *testing.T) {
	tracker := newTestTracker(t, 60*time.Millisecond)
	ctx := context.Background()

	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("set typing: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("refresh typing: %v", err)
	}
	time.Sleep(40 * time.Millisecond)

	// 80ms after the first call, but only 40ms after the refresh
	ids, err := tracker.ActiveTypers(ctx, 1, 0)
	if err != nil {
		t.Fatalf("active typers: %v", err)
	}
	if len(ids) != 1 || ids[0] != 10 {
		t.Fatalf("expected refreshed user still typing, got %v", ids)
	}
}

func TestClearTypingIsIdempotent(t *testing.T) {
	tracker := newTestTracker(t, time.Second)
	ctx := context.Background()

	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("set typing: %v", err)
	}
	if err := tracker.ClearTyping(ctx, 1, 10); err != nil {
		t.Fatalf("clear typing: %v", err)
	}
	if err := tracker.ClearTyping(ctx, 1, 10); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	ids, err := tracker.ActiveTypers(ctx, 1, 0)
	if err != nil {
		t.Fatalf("active typers: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list after clear, got %v", ids)
	}
}

func TestBoardsAreIsolated(t *testing.T) {
	tracker := newTestTracker(t, time.Second)
	ctx := context.Background()

	if err := tracker.SetTyping(ctx, 1, 10); err != nil {
		t.Fatalf("set typing: %v", err)
	}
	ids, err := tracker.ActiveTypers(ctx, 2, 0)
	if err != nil {
		t.Fatalf("active typers: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no typers on board 2, got %v", ids)
	}
}
