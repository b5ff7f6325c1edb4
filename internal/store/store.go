// Package store persists goal-update entries in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spacesedan/goalpulse/internal/models"
)

var ErrNotFound = errors.New("entry not found")

type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the entry database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("[Store] failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("[Store] failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		area TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		sentiment_label TEXT NOT NULL,
		next_step TEXT NOT NULL,
		summary_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_area ON entries(area);
	CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status);
	CREATE INDEX IF NOT EXISTS idx_entries_sentiment ON entries(sentiment_label);
	CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);

	CREATE TABLE IF NOT EXISTS entry_tags (
		entry_id TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
		tag TEXT NOT NULL,
		PRIMARY KEY (entry_id, tag)
	);
	CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateEntry inserts an analyzed entry together with its tags.
func (s *Store) CreateEntry(ctx context.Context, entry models.GoalUpdate) error {
	summaryJSON, err := json.Marshal(entry.SummaryBullets)
	if err != nil {
		return fmt.Errorf("[Store] failed to encode summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("[Store] failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, text, area, status, sentiment_label, next_step, summary_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Text, entry.Area, entry.Status,
		string(entry.SentimentLabel), entry.NextStep, string(summaryJSON),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("[Store] failed to insert entry: %w", err)
	}

	if err := replaceTags(ctx, tx, entry.ID, entry.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// GetEntry loads one entry by ID, returning ErrNotFound when absent.
func (s *Store) GetEntry(ctx context.Context, id string) (models.GoalUpdate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, area, status, sentiment_label, next_step, summary_json, created_at, updated_at
		 FROM entries WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.GoalUpdate{}, ErrNotFound
		}
		return models.GoalUpdate{}, fmt.Errorf("[Store] failed to load entry: %w", err)
	}

	tags, err := s.loadTags(ctx, id)
	if err != nil {
		return models.GoalUpdate{}, err
	}
	entry.Tags = tags

	return entry, nil
}

// ListEntries returns entries matching the filter, newest first.
func (s *Store) ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.GoalUpdate, error) {
	query := `SELECT id, text, area, status, sentiment_label, next_step, summary_json, created_at, updated_at
		 FROM entries`

	var conditions []string
	var args []any
	if filter.Area != "" {
		conditions = append(conditions, "area = ?")
		args = append(args, filter.Area)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Sentiment != "" {
		conditions = append(conditions, "sentiment_label = ?")
		args = append(args, filter.Sentiment)
	}
	if filter.Tag != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM entry_tags t WHERE t.entry_id = entries.id AND t.tag = ?)")
		args = append(args, filter.Tag)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("[Store] failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.GoalUpdate
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("[Store] failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("[Store] failed during entry listing: %w", err)
	}

	for i := range entries {
		tags, err := s.loadTags(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}

	return entries, nil
}

// UpdateEntry applies a patch to an entry's metadata and returns the
// updated row. Entry text and its analysis are immutable.
func (s *Store) UpdateEntry(ctx context.Context, id string, patch models.EntryPatch) (models.GoalUpdate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.GoalUpdate{}, fmt.Errorf("[Store] failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sets []string
	var args []any
	if patch.Area != nil {
		sets = append(sets, "area = ?")
		args = append(args, *patch.Area)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	args = append(args, id)

	res, err := tx.ExecContext(ctx,
		"UPDATE entries SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return models.GoalUpdate{}, fmt.Errorf("[Store] failed to update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.GoalUpdate{}, fmt.Errorf("[Store] failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.GoalUpdate{}, ErrNotFound
	}

	if patch.Tags != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = ?", id); err != nil {
			return models.GoalUpdate{}, fmt.Errorf("[Store] failed to clear tags: %w", err)
		}
		if err := replaceTags(ctx, tx, id, *patch.Tags); err != nil {
			return models.GoalUpdate{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.GoalUpdate{}, fmt.Errorf("[Store] failed to commit update: %w", err)
	}

	return s.GetEntry(ctx, id)
}

// DeleteEntry removes an entry and (via cascade) its tags.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("[Store] failed to delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("[Store] failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func replaceTags(ctx context.Context, tx *sql.Tx, entryID string, tags []string) error {
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO entry_tags (entry_id, tag) VALUES (?, ?)", entryID, tag); err != nil {
			return fmt.Errorf("[Store] failed to insert tag %q: %w", tag, err)
		}
	}
	return nil
}

func (s *Store) loadTags(ctx context.Context, entryID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY tag", entryID)
	if err != nil {
		return nil, fmt.Errorf("[Store] failed to load tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("[Store] failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.GoalUpdate, error) {
	var entry models.GoalUpdate
	var label, summaryJSON, createdAt, updatedAt string

	err := row.Scan(&entry.ID, &entry.Text, &entry.Area, &entry.Status,
		&label, &entry.NextStep, &summaryJSON, &createdAt, &updatedAt)
	if err != nil {
		return entry, err
	}

	entry.SentimentLabel = models.SentimentLabel(label)
	if err := json.Unmarshal([]byte(summaryJSON), &entry.SummaryBullets); err != nil {
		return entry, fmt.Errorf("decode summary: %w", err)
	}
	if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return entry, fmt.Errorf("parse created_at: %w", err)
	}
	if entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return entry, fmt.Errorf("parse updated_at: %w", err)
	}

	return entry, nil
}
