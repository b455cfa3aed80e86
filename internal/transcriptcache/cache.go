package transcriptcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"vidsentiment/internal/config"
)

// DatabaseFileName is the SQLite file created under paths.state_dir.
const DatabaseFileName = "transcripts.db"

// Cache stores transcripts by key.
type Cache interface {
	// Get returns the cached transcript and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, transcript string) error
	Close() error
}

// Key derives a cache key from the video URL and the backend, model, and
// language that produced the transcript.
func Key(videoURL, backend, model, language string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{strings.TrimSpace(videoURL), backend, model, language}, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Nop is a cache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (Nop) Put(context.Context, string, string) error { return nil }

func (Nop) Close() error { return nil }

// Open builds the cache selected by cfg.Cache.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Cache, error) {
	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return Nop{}, nil
	case config.CacheBackendValkey:
		store, err := OpenValkey(ctx, ValkeyOptions{
			Address:  cfg.Cache.ValkeyAddress,
			Password: cfg.Cache.ValkeyPassword,
			TLS:      cfg.Cache.ValkeyTLS,
			TTL:      ttl,
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendSQLite, "":
		store, err := OpenSQLite(ctx, filepath.Join(cfg.Paths.StateDir, DatabaseFileName), ttl)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
