package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jjbmsda/ott-mood-app/internal/config"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the persistent key-value store behind favorites and preferences.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open connects the backend selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config) (KV, error) {
	switch cfg.Store.Driver {
	case "redis":
		rdb, err := NewRedis(ctx, cfg.Redis, cfg.Store.ConnectAttempts)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(rdb, cfg.Store.Namespace), nil
	case "postgres":
		db, err := NewPostgres(ctx, cfg.DB, cfg.Store.ConnectAttempts)
		if err != nil {
			return nil, err
		}
		return NewSQLKV(db, DialectPostgres, cfg.Store.Namespace), nil
	case "sqlite":
		db, err := NewSQLite(ctx, cfg.Store.SQLitePath, cfg.Store.ConnectAttempts)
		if err != nil {
			return nil, err
		}
		return NewSQLKV(db, DialectSQLite, cfg.Store.Namespace), nil
	case "memory":
		slog.Warn("using in-memory store, favorites and preferences will not survive a restart")
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

func connectWithRetry(ctx context.Context, what string, attempts uint, ping func() error) error {
	return retry.Do(
		ping,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("connection attempt failed", "backend", what, "attempt", n+1, "error", err)
		}),
	)
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
