package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS contact (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		company TEXT,
		position TEXT,
		relationship TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS interview (
		id TEXT PRIMARY KEY,
		contact_id TEXT,
		company TEXT NOT NULL,
		position TEXT NOT NULL,
		round TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		interview_at TEXT,
		outcome TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (contact_id) REFERENCES contact(id)
	);

	CREATE TABLE IF NOT EXISTS referral (
		id TEXT PRIMARY KEY,
		contact_id TEXT NOT NULL,
		company TEXT NOT NULL,
		position TEXT NOT NULL,
		status TEXT NOT NULL,
		request_date TEXT,
		follow_up_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (contact_id) REFERENCES contact(id)
	);

	-- Sent follow-up actions, child rows of interview/referral. Append-only
	-- from the domain's point of view: the only writer is the whole-record
	-- Save, which rewrites the rows from the full merged record.
	CREATE TABLE IF NOT EXISTS followup_action (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_kind TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		action_kind TEXT NOT NULL,
		subkind TEXT NOT NULL DEFAULT '',
		sent_at TEXT NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_followup_action_entity
		ON followup_action(entity_kind, entity_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
