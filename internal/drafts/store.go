package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Draft is a locally saved snapshot of an unfinished case creation
// form. Drafts never leave the machine; the backend only ever sees the
// finished case.
type Draft struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Step      int             `json:"step"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store persists drafts in a local SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the draft database and applies
// migrations.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create draft directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open(sqliteDriver, sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open draft database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate draft database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS drafts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			step INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_updated_at ON drafts(updated_at DESC)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Save upserts a draft. A draft without an id gets one assigned; the
// assigned id is written back so the caller can keep saving over it.
func (s *Store) Save(ctx context.Context, draft *Draft) error {
	now := time.Now()
	if draft.ID == "" {
		draft.ID = uuid.NewString()
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, title, step, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			step = excluded.step,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		draft.ID, draft.Title, draft.Step, string(draft.Payload),
		draft.CreatedAt.Unix(), draft.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.ID, err)
	}
	return nil
}

// Get fetches one draft by id.
func (s *Store) Get(ctx context.Context, id string) (*Draft, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, step, payload, created_at, updated_at
		FROM drafts WHERE id = ?`, id)

	draft, err := scanDraft(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft %s: %w", id, err)
	}
	return draft, nil
}

// List returns all drafts, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*Draft, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, step, payload, created_at, updated_at
		FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

// Delete removes a draft. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored drafts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drafts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count drafts: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDraft(row rowScanner) (*Draft, error) {
	var draft Draft
	var payload string
	var createdAt, updatedAt int64
	if err := row.Scan(&draft.ID, &draft.Title, &draft.Step, &payload, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	draft.Payload = json.RawMessage(payload)
	draft.CreatedAt = time.Unix(createdAt, 0)
	draft.UpdatedAt = time.Unix(updatedAt, 0)
	return &draft, nil
}
