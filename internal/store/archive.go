package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkarpov/flurry/internal/codec"
	"github.com/mkarpov/flurry/internal/model"
	_ "modernc.org/sqlite"
)

// ArchivedTask is a completed task that was moved out of the active
// data file, together with the moment it was archived.
type ArchivedTask struct {
	Task       model.Task
	ArchivedAt time.Time
}

// ArchiveStore keeps completed tasks in a local sqlite database so
// the active data file stays small.
type ArchiveStore struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the archive database and ensures
// the schema exists.
func OpenArchive(path string) (*ArchiveStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS archive (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		priority    TEXT NOT NULL,
		category    TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := migrateArchivedAt(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate archived_at: %w", err)
	}

	return &ArchiveStore{db: db}, nil
}

func migrateArchivedAt(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(archive)")
	if err != nil {
		return err
	}
	defer rows.Close()

	hasArchivedAt := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == "archived_at" {
			hasArchivedAt = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !hasArchivedAt {
		_, err := db.Exec("ALTER TABLE archive ADD COLUMN archived_at TEXT NOT NULL DEFAULT ''")
		return err
	}
	return nil
}

// Archive inserts a task into the archive. Re-archiving the same id
// overwrites the earlier row.
func (a *ArchiveStore) Archive(t model.Task) error {
	_, err := a.db.Exec(
		`INSERT OR REPLACE INTO archive
		 (id, title, description, start_time, end_time, priority, category, created_at, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description,
		t.StartTime.Format(codec.TimeLayout), t.EndTime.Format(codec.TimeLayout),
		string(t.Priority), string(t.Category),
		t.CreatedAt.Format(codec.TimeLayout),
		time.Now().Format(codec.TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("archive task %s: %w", t.ID, err)
	}
	return nil
}

func scanArchived(scanner interface{ Scan(...any) error }) (ArchivedTask, error) {
	var at ArchivedTask
	var start, end, priority, category, created, archived string
	if err := scanner.Scan(
		&at.Task.ID, &at.Task.Title, &at.Task.Description,
		&start, &end, &priority, &category, &created, &archived,
	); err != nil {
		return ArchivedTask{}, err
	}
	at.Task.StartTime, _ = time.ParseInLocation(codec.TimeLayout, start, time.Local)
	at.Task.EndTime, _ = time.ParseInLocation(codec.TimeLayout, end, time.Local)
	at.Task.CreatedAt, _ = time.ParseInLocation(codec.TimeLayout, created, time.Local)
	at.ArchivedAt, _ = time.ParseInLocation(codec.TimeLayout, archived, time.Local)
	at.Task.Priority = model.ParsePriority(priority)
	at.Task.Category = model.ParseCategory(category)
	at.Task.Completed = true
	return at, nil
}

// List returns all archived tasks, most recently archived first.
func (a *ArchiveStore) List() ([]ArchivedTask, error) {
	rows, err := a.db.Query(
		`SELECT id, title, description, start_time, end_time, priority, category, created_at, archived_at
		 FROM archive ORDER BY archived_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var out []ArchivedTask
	for rows.Next() {
		at, err := scanArchived(rows)
		if err != nil {
			return nil, fmt.Errorf("scan archived task: %w", err)
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

// CountByCategory returns how many archived tasks each category holds.
func (a *ArchiveStore) CountByCategory() (map[model.Category]int, error) {
	rows, err := a.db.Query("SELECT category, COUNT(*) FROM archive GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count archive: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[model.ParseCategory(category)] = n
	}
	return counts, rows.Err()
}

// Close closes the database connection.
func (a *ArchiveStore) Close() error {
	return a.db.Close()
}
