// Package archive persists sweep snapshots to a local SQLite database so
// past runs can be listed and compared.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pmelby/roomscan/internal/sweep"
)

// DefaultPath returns the archive location under the user cache directory.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache directory: %w", err)
	}
	return filepath.Join(base, "roomscan", "archive.db"), nil
}

// Archive wraps the SQLite snapshot database.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the archive database at the given path, creating
// parent directories as needed.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			taken_at TEXT NOT NULL,
			window_hours INTEGER NOT NULL,
			total_rooms INTEGER NOT NULL,
			unread_rooms INTEGER NOT NULL,
			read_rooms INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rooms (
			run_id TEXT NOT NULL,
			room_id TEXT NOT NULL,
			title TEXT,
			type TEXT,
			last_activity TEXT,
			unread_count INTEGER NOT NULL,
			mentioned_me INTEGER NOT NULL,
			PRIMARY KEY (run_id, room_id)
		);

		CREATE TABLE IF NOT EXISTS messages (
			run_id TEXT NOT NULL,
			message_id TEXT NOT NULL,
			room_id TEXT NOT NULL,
			person_email TEXT,
			body TEXT,
			PRIMARY KEY (run_id, message_id)
		);

		CREATE INDEX IF NOT EXISTS idx_runs_taken_at ON runs(taken_at);
	`
	_, err := db.Exec(schema)
	return err
}

// RunSummary describes one archived run.
type RunSummary struct {
	ID          string `json:"id"`
	TakenAt     string `json:"takenAt"`
	WindowHours int    `json:"windowHours"`
	Total       int    `json:"total"`
	Unread      int    `json:"unread"`
	Read        int    `json:"read"`
}

// SaveRun records one assembled payload and returns the new run id.
func (a *Archive) SaveRun(takenAt time.Time, windowHours int, p *sweep.Payload) (string, error) {
	runID := uuid.NewString()

	tx, err := a.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stats := p.Stats
	if stats == nil {
		stats = &sweep.Stats{}
	}
	if _, err := tx.Exec(
		`INSERT INTO runs (id, taken_at, window_hours, total_rooms, unread_rooms, read_rooms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, takenAt.UTC().Format(time.RFC3339), windowHours, stats.Total, stats.Unread, stats.Read,
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	roomStmt, err := tx.Prepare(
		`INSERT INTO rooms (run_id, room_id, title, type, last_activity, unread_count, mentioned_me)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing rooms insert: %w", err)
	}
	defer roomStmt.Close()

	msgStmt, err := tx.Prepare(
		`INSERT INTO messages (run_id, message_id, room_id, person_email, body)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing messages insert: %w", err)
	}
	defer msgStmt.Close()

	for _, room := range p.Rooms {
		mentioned := 0
		if room.MentionedMe {
			mentioned = 1
		}
		lastActivity := ""
		if !room.LastActivity.IsZero() {
			lastActivity = room.LastActivity.UTC().Format(time.RFC3339)
		}
		if _, err := roomStmt.Exec(runID, room.ID, room.Title, room.Type, lastActivity, room.UnreadMessageCount, mentioned); err != nil {
			return "", fmt.Errorf("inserting room %s: %w", room.ID, err)
		}

		for _, m := range room.UnreadMessages {
			if _, err := msgStmt.Exec(runID, m.ID, room.ID, m.PersonEmail, messageBody(m)); err != nil {
				return "", fmt.Errorf("inserting message %s: %w", m.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// messageBody returns the single body representation a slim message carries.
func messageBody(m sweep.SlimMessage) string {
	switch {
	case m.HTML != "":
		return m.HTML
	case m.Markdown != "":
		return m.Markdown
	default:
		return m.Text
	}
}

// ListRuns returns archived runs, newest first, up to limit (0 means all).
func (a *Archive) ListRuns(limit int) ([]RunSummary, error) {
	query := `SELECT id, taken_at, window_hours, total_rooms, unread_rooms, read_rooms
		FROM runs ORDER BY taken_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.TakenAt, &r.WindowHours, &r.Total, &r.Unread, &r.Read); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
