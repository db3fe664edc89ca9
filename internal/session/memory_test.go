package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Stop()
	ctx := context.Background()

	if err := s.Set(ctx, "tok", 42, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	id, ok, err := s.Get(ctx, "tok")
	if err != nil || !ok || id != 42 {
		t.Fatalf("get = (%d, %v, %v), want (42, true, nil)", id, ok, err)
	}

	if err := s.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "tok"); ok {
		t.Fatalf("token survived delete")
	}
	// Deleting again is a no-op.
	if err := s.Delete(ctx, "tok"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Stop()
	ctx := context.Background()

	if err := s.Set(ctx, "short", 1, 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "short"); ok {
		t.Fatalf("expired token still resolvable")
	}
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Stop()
	ctx := context.Background()

	if err := s.Set(ctx, "forever", 7, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(15 * time.Millisecond)
	id, ok, _ := s.Get(ctx, "forever")
	if !ok || id != 7 {
		t.Fatalf("zero-ttl token expired: (%d, %v)", id, ok)
	}
}

func TestMemoryStoreJanitorSweeps(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	defer s.Stop()
	ctx := context.Background()

	if err := s.Set(ctx, "short", 1, 5*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	s.mu.RLock()
	_, present := s.items["short"]
	s.mu.RUnlock()
	if present {
		t.Fatalf("janitor did not reclaim expired entry")
	}
}

func TestMemoryStoreStopIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	s.Stop()
	s.Stop()
}
