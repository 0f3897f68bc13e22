package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	gen, err := s.Generation(ctx, BarbershopBookingsKey(7))
	if err != nil || gen != 0 {
		t.Fatalf("expected generation 0, got %d err=%v", gen, err)
	}
	key := VersionedKey(BarbershopBookingsKey(7), gen)
	if err := s.Set(ctx, key, []string{"14:00", "14:45"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got []string
	ok, err := s.Get(ctx, key, &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[1] != "14:45" {
		t.Fatalf("unexpected value %v", got)
	}

	if err := s.Invalidate(ctx, BarbershopBookingsKey(7), UserBookingsKey(1)); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if ok, _ := s.Get(ctx, key, &got); ok {
		t.Fatal("expected miss after invalidate")
	}
	if gen, _ := s.Generation(ctx, BarbershopBookingsKey(7)); gen != 1 {
		t.Fatalf("expected generation 1, got %d", gen)
	}
}

func TestMemoryStoreLateSetAfterInvalidateIsNotVisible(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := UserBookingsKey(3)

	gen, _ := s.Generation(ctx, base)
	if err := s.Invalidate(ctx, base); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	// leitor lento grava com a geração antiga
	if err := s.Set(ctx, VersionedKey(base, gen), []string{"stale"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	cur, _ := s.Generation(ctx, base)
	var got []string
	if ok, _ := s.Get(ctx, VersionedKey(base, cur), &got); ok {
		t.Fatalf("expected miss on current generation, got %v", got)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(2 * time.Minute)

	var v int
	if ok, _ := s.Get(ctx, "k", &v); ok {
		t.Fatal("expected entry to be expired")
	}
}
