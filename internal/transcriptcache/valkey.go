package transcriptcache

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"vidsentiment/internal/logging"
)

const (
	valkeyKeyPrefix  = "vidsentiment:transcript:"
	valkeyRetries    = 3
	valkeyRetryDelay = 250 * time.Millisecond
)

// ValkeyOptions configures the shared Valkey cache.
type ValkeyOptions struct {
	Address  string
	Password string
	TLS      bool
	TTL      time.Duration
}

// Valkey is a Cache stored in a Valkey (or Redis-compatible) server.
type Valkey struct {
	client valkey.Client
	ttl    time.Duration
	logger *slog.Logger
}

// OpenValkey connects and pings the server.
func OpenValkey(ctx context.Context, opts ValkeyOptions, logger *slog.Logger) (*Valkey, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
		DisableCache:     true,
	}
	if opts.TLS {
		clientOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect valkey %s: %w", opts.Address, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey %s: %w", opts.Address, err)
	}

	return &Valkey{
		client: client,
		ttl:    opts.TTL,
		logger: logging.NewComponentLogger(logger, "transcriptcache"),
	}, nil
}

// Get returns the cached transcript. A missing key is not an error.
func (v *Valkey) Get(ctx context.Context, key string) (string, bool, error) {
	result := v.doWithRetry(ctx, func() valkey.Completed {
		return v.client.B().Get().Key(valkeyKeyPrefix + key).Build()
	})
	text, err := result.ToString()
	if valkey.IsValkeyNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("valkey get: %w", err)
	}
	return text, true, nil
}

// Put stores transcript with the configured expiry.
func (v *Valkey) Put(ctx context.Context, key, transcript string) error {
	result := v.doWithRetry(ctx, func() valkey.Completed {
		set := v.client.B().Set().Key(valkeyKeyPrefix + key).Value(transcript)
		if v.ttl > 0 {
			return set.ExSeconds(int64(v.ttl / time.Second)).Build()
		}
		return set.Build()
	})
	if err := result.Error(); err != nil {
		return fmt.Errorf("valkey set: %w", err)
	}
	return nil
}

// Close releases the client connections.
func (v *Valkey) Close() error {
	v.client.Close()
	return nil
}

// doWithRetry rebuilds the command per attempt since completed commands are
// recycled after Do.
func (v *Valkey) doWithRetry(ctx context.Context, build func() valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for attempt := 0; attempt < valkeyRetries; attempt++ {
		result = v.client.Do(ctx, build())
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			return result
		}
		v.logger.Debug("valkey command failed",
			logging.Int("attempt", attempt+1),
			logging.Error(err),
		)
		select {
		case <-ctx.Done():
			return result
		case <-time.After(valkeyRetryDelay):
		}
	}
	return result
}
