package transcriptcache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vidsentiment/internal/config"
)

func TestKeyIsStableAndDistinct(t *testing.T) {
	a := Key("https://youtu.be/abc", "whisperx", "base", "en")
	if a != Key(" https://youtu.be/abc ", "whisperx", "base", "en") {
		t.Fatal("expected surrounding whitespace to be ignored")
	}
	if a == Key("https://youtu.be/abc", "openai", "whisper-1", "en") {
		t.Fatal("expected backend to influence key")
	}
	if a == Key("https://youtu.be/abc", "whisperx", "base", "vi") {
		t.Fatal("expected language to influence key")
	}
	if a == Key("https://youtu.be/abc", "whisperx", "base", "") {
		t.Fatal("expected auto-detected language to use its own key")
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex, got %q", a)
	}
}

func TestSQLiteRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", DatabaseFileName)
	store, err := OpenSQLite(ctx, path, time.Hour)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	defer store.Close()

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, "k", "first"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Put(ctx, "k", "second"); err != nil {
		t.Fatalf("Put overwrite returned error: %v", err)
	}
	text, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || text != "second" {
		t.Fatalf("unexpected get result: %q ok=%v err=%v", text, ok, err)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	removed, err := store.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned entry, got %d", removed)
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DatabaseFileName)
	store, err := OpenSQLite(ctx, path, 0)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	if err := store.Put(ctx, "k", "persisted"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	store.Close()

	reopened, err := OpenSQLite(ctx, path, 0)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	if text, ok, _ := reopened.Get(ctx, "k"); !ok || text != "persisted" {
		t.Fatalf("expected persisted transcript, got %q ok=%v", text, ok)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()

	cfg.Cache.Backend = config.CacheBackendNone
	cache, err := Open(ctx, &cfg, nil)
	if err != nil {
		t.Fatalf("Open none returned error: %v", err)
	}
	if _, ok := cache.(Nop); !ok {
		t.Fatalf("expected Nop cache, got %T", cache)
	}

	cfg.Cache.Backend = config.CacheBackendSQLite
	cache, err = Open(ctx, &cfg, nil)
	if err != nil {
		t.Fatalf("Open sqlite returned error: %v", err)
	}
	defer cache.Close()
	sqlite, ok := cache.(*SQLite)
	if !ok {
		t.Fatalf("expected SQLite cache, got %T", cache)
	}
	if sqlite.Path() != filepath.Join(cfg.Paths.StateDir, DatabaseFileName) {
		t.Fatalf("unexpected db path %q", sqlite.Path())
	}

	cfg.Cache.Backend = "memcached"
	if _, err := Open(ctx, &cfg, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenValkeyFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := OpenValkey(ctx, ValkeyOptions{Address: "127.0.0.1:1"}, nil); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestNopNeverHits(t *testing.T) {
	var cache Cache = Nop{}
	if err := cache.Put(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if _, ok, _ := cache.Get(context.Background(), "k"); ok {
		t.Fatal("expected Nop to miss")
	}
}
