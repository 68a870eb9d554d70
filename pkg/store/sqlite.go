package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"voidxp/gateway/pkg/auth"
)

// Store is a SQLite-backed persistence layer.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once

	createUserStmt  *sql.Stmt
	getUserStmt     *sql.Stmt
	insertEventStmt *sql.Stmt
}

// Config configures the store.
type Config struct {
	// Path is the SQLite database file. ":memory:" works for tests.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// Open opens the database, creates the schema, and prepares statements.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		api_key TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		operation TEXT NOT NULL,
		tier TEXT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id);
	CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) prepareStatements() error {
	var err error

	s.createUserStmt, err = s.db.Prepare(`
		INSERT INTO users (id, email, password_hash, api_key, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	s.getUserStmt, err = s.db.Prepare(`
		SELECT id, email, password_hash, api_key, created_at
		FROM users WHERE email = ?`)
	if err != nil {
		return err
	}

	s.insertEventStmt, err = s.db.Prepare(`
		INSERT INTO events (user_id, operation, tier, provider, model, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// CreateUser implements auth.UserStore.
func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	_, err := s.createUserStmt.ExecContext(ctx,
		u.ID, u.Email, u.PasswordHash, u.APIKey, u.CreatedAt.UnixMilli())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail implements auth.UserStore.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	var createdAt int64
	err := s.getUserStmt.QueryRowContext(ctx, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.APIKey, &createdAt)
	if err == sql.ErrNoRows {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

// RecordEvent appends one request event.
func (s *Store) RecordEvent(ctx context.Context, e *Event) error {
	_, err := s.insertEventStmt.ExecContext(ctx,
		e.UserID, e.Operation, e.Tier, e.Provider, e.Model, e.Status,
		e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Usage aggregates events for one user since the given time. A zero
// since covers all history.
func (s *Store) Usage(ctx context.Context, userID string, since time.Time) (*UsageSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT operation, provider, status, COUNT(*)
		FROM events
		WHERE user_id = ? AND created_at >= ?
		GROUP BY operation, provider, status`,
		userID, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer rows.Close()

	summary := &UsageSummary{
		ByOperation: make(map[string]int64),
		ByProvider:  make(map[string]int64),
		ByStatus:    make(map[string]int64),
	}
	for rows.Next() {
		var op, provider, status string
		var n int64
		if err := rows.Scan(&op, &provider, &status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		summary.TotalRequests += n
		summary.ByOperation[op] += n
		summary.ByProvider[provider] += n
		summary.ByStatus[status] += n
	}
	return summary, rows.Err()
}

// Close releases prepared statements and the database handle.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.createUserStmt, s.getUserStmt, s.insertEventStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}
