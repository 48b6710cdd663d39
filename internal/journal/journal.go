// Package journal provides the local SQLite activity journal. It records
// the outcome of each form submission and processing run so the operator
// can review what happened during a session. It never stores form values
// or entity data; the remote service remains the only source of truth.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned when the journal is used after Close.
var ErrClosed = errors.New("journal is closed")

// Journal wraps a sql.DB holding the activity log.
type Journal struct {
	db   *sql.DB
	path string

	mu     sync.RWMutex
	closed bool
}

// Open creates a journal connection with WAL mode enabled.
func Open(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s?_txlock=immediate&_timeout=5000", dbPath)

	sqlDB, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	j := &Journal{db: sqlDB, path: dbPath}

	if err := j.initPragmas(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("initializing pragmas: %w", err)
	}

	return j, nil
}

// NewInMemory creates an in-memory journal for testing purposes.
// It does not run migrations or enable WAL mode.
func NewInMemory() (*Journal, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory journal: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &Journal{db: sqlDB, path: ":memory:"}, nil
}

func (j *Journal) initPragmas() error {
	pragmas := []struct {
		name   string
		pragma string
	}{
		{"journal_mode", "PRAGMA journal_mode=WAL"},
		{"synchronous", "PRAGMA synchronous=NORMAL"},
		{"busy_timeout", "PRAGMA busy_timeout=5000"},
		{"page_size", "PRAGMA page_size=4096"},
		{"cache_size", "PRAGMA cache_size=-2000"},
	}

	for _, p := range pragmas {
		if _, err := j.db.Exec(p.pragma); err != nil {
			return fmt.Errorf("setting %s: %w", p.name, err)
		}
	}

	return nil
}

// CheckIntegrity performs a database integrity check.
func (j *Journal) CheckIntegrity(ctx context.Context) error {
	rows, err := j.db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return fmt.Errorf("running integrity check: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating results: %w", err)
	}

	if len(results) == 1 && results[0] == "ok" {
		return nil
	}

	return fmt.Errorf("integrity check failed: %v", results)
}

// Checkpoint forces a WAL checkpoint to sync all changes to the main file.
func (j *Journal) Checkpoint(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Close performs a final checkpoint and closes the connection.
// Closing twice is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.mu.Unlock()

	if j.path != ":memory:" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := j.Checkpoint(ctx); err != nil {
			slog.Warn("final journal checkpoint failed", "error", err)
		}
	}

	if err := j.db.Close(); err != nil {
		return fmt.Errorf("closing journal: %w", err)
	}

	slog.Debug("journal closed", "path", j.path)
	return nil
}

// IsClosed returns true if the journal has been closed.
func (j *Journal) IsClosed() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.closed
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// withTransaction executes fn within a transaction, committing on nil.
func (j *Journal) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if j.IsClosed() {
		return ErrClosed
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
