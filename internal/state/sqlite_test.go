package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteKVSetGetRemove(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "state.db")
	kv, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	defer func() { _ = kv.Close() }()

	if err := kv.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Running twice must be harmless.
	if err := kv.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema again: %v", err)
	}

	if _, found, err := kv.Get("missing"); err != nil || found {
		t.Fatalf("expected missing key, got found=%v err=%v", found, err)
	}
	if err := kv.Set("k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set("k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, found, err := kv.Get("k")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got != "two" {
		t.Fatalf("expected %q, got %q", "two", got)
	}
	if err := kv.Remove("k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := kv.Get("k"); found {
		t.Fatalf("expected key to be removed")
	}
	if err := kv.Set(" ", "x"); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestSQLiteKVBacksProgressStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	kv, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := kv.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	clock := &fixedClock{t: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)}
	s := NewProgressStore(kv, clock, nil)
	s.NewGame()
	for i := 0; i < MasteryThreshold; i++ {
		s.RecordAnswer("6.1", true)
	}
	s.CollectRune("integration")
	_ = kv.Close()

	// Reopen the file the way a new session would.
	kv, err = NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer func() { _ = kv.Close() }()
	if err := kv.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	resumed := NewProgressStore(kv, clock, nil)
	if !resumed.LoadOrInit() {
		t.Fatalf("expected saved record to load")
	}
	if !resumed.IsTopicMastered("6.1") {
		t.Fatalf("expected topic 6.1 mastered after reload")
	}
	if resumed.CountRunes() != 1 {
		t.Fatalf("expected 1 rune, got %d", resumed.CountRunes())
	}
}
