package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), limit)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreNewestFirstAndDedup(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, 10)

	inputs := []struct {
		raw string
		ms  int64
	}{
		{"1500", 1500},
		{"-1:30", -90000},
		{"1.5", 1500},
	}
	for _, in := range inputs {
		if err := store.Add(ctx, in.raw, in.ms); err != nil {
			t.Fatalf("Add(%q) failed: %v", in.raw, err)
		}
	}

	entries, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Raw != "1.5" || entries[0].Ms != 1500 {
		t.Errorf("entry 0: expected 1.5/1500, got %q/%d", entries[0].Raw, entries[0].Ms)
	}
	if entries[1].Ms != -90000 {
		t.Errorf("entry 1: expected -90000, got %d", entries[1].Ms)
	}
	if entries[1].Label() != "–90000ms" || entries[1].Human() != "–1m 30s" {
		t.Errorf("entry 1: unexpected rendering %q / %q", entries[1].Label(), entries[1].Human())
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("expected created time to be set")
	}
}

func TestStoreLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, 3)

	for i := 1; i <= 5; i++ {
		if err := store.Add(ctx, fmt.Sprint(i*100), int64(i*100)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	entries, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []int64{500, 400, 300} {
		if entries[i].Ms != want {
			t.Errorf("entry %d: expected %d, got %d", i, want, entries[i].Ms)
		}
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if entries, _ := store.Recent(ctx); len(entries) != 0 {
		t.Errorf("expected empty history after Clear, got %d", len(entries))
	}
}

func TestOpenRejectsBadLimit(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "h.db"), 0); err == nil {
		t.Error("expected error for zero limit")
	}
}
