package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists conversation history in SQLite so that several
// server processes can share sessions behind a load balancer.
type SQLiteStore struct {
	db       *sql.DB
	maxTurns int
}

// OpenSQLite creates or opens a SQLite-backed store at the given path.
func OpenSQLite(path string, maxTurns int) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return newSQLiteStore(db, maxTurns)
}

// OpenSQLiteMemory creates an in-memory SQLite store (useful for testing).
func OpenSQLiteMemory(maxTurns int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	return newSQLiteStore(db, maxTurns)
}

func newSQLiteStore(db *sql.DB, maxTurns int) (*SQLiteStore, error) {
	if maxTurns < 1 {
		maxTurns = 1
	}
	s := &SQLiteStore{db: db, maxTurns: maxTurns}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
    id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS chat_turns (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('user','assistant')),
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_turns_session ON chat_turns(session_id, seq);
`

func (s *SQLiteStore) History(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM chat_turns WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Role, &t.Text); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (s *SQLiteStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO chat_sessions (id) VALUES (?)`, sessionID); err != nil {
		return fmt.Errorf("ensuring session: %w", err)
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_turns WHERE session_id = ?`, sessionID).Scan(&next); err != nil {
		return fmt.Errorf("finding next sequence: %w", err)
	}

	for i, t := range turns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_turns (id, session_id, seq, role, content) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), sessionID, next+i, t.Role, t.Text); err != nil {
			return fmt.Errorf("inserting turn: %w", err)
		}
	}

	// Evict oldest turns beyond the cap.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chat_turns WHERE session_id = ? AND seq <= (
			SELECT MAX(seq) - ? FROM chat_turns WHERE session_id = ?
		)`, sessionID, s.maxTurns, sessionID); err != nil {
		return fmt.Errorf("evicting old turns: %w", err)
	}

	return tx.Commit()
}
