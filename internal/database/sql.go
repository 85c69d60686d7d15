package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/jjbmsda/ott-mood-app/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Dialect selects SQL driver and placeholder style.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

// NewPostgres opens a PostgreSQL connection and runs migrations.
func NewPostgres(ctx context.Context, cfg config.DBConfig, attempts uint) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := connectWithRetry(ctx, "postgres", attempts, func() error { return db.PingContext(ctx) }); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := Migrate(db, DialectPostgres); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLite opens a SQLite database file and runs migrations.
func NewSQLite(ctx context.Context, path string, attempts uint) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := connectWithRetry(ctx, "sqlite", attempts, func() error { return db.PingContext(ctx) }); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	slog.Info("opened SQLite store", "path", path)

	if err := Migrate(db, DialectSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded migrations.
func Migrate(db *sql.DB, dialect Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed", "dialect", dialect)
	return nil
}

// SQLKV stores values in the kv_store table.
type SQLKV struct {
	db        *sql.DB
	namespace string

	getQuery    string
	upsertQuery string
	deleteQuery string
}

// NewSQLKV wraps a migrated database.
func NewSQLKV(db *sql.DB, dialect Dialect, namespace string) *SQLKV {
	kv := &SQLKV{db: db, namespace: namespace}
	switch dialect {
	case DialectPostgres:
		kv.getQuery = `SELECT value FROM kv_store WHERE namespace = $1 AND store_key = $2`
		kv.upsertQuery = `INSERT INTO kv_store (namespace, store_key, value, updated_at)
			VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
			ON CONFLICT (namespace, store_key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`
		kv.deleteQuery = `DELETE FROM kv_store WHERE namespace = $1 AND store_key = $2`
	default:
		kv.getQuery = `SELECT value FROM kv_store WHERE namespace = ? AND store_key = ?`
		kv.upsertQuery = `INSERT INTO kv_store (namespace, store_key, value, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (namespace, store_key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
		kv.deleteQuery = `DELETE FROM kv_store WHERE namespace = ? AND store_key = ?`
	}
	return kv
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.getQuery, s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQuery, s.namespace, key, string(value)); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteQuery, s.namespace, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}
