package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfellows/tend/internal/models"
	_ "modernc.org/sqlite"
)

// timeFormat is RFC 3339 with a fixed-width fractional second so stored
// timestamps sort lexicographically. All times are stored in UTC.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	title TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	messages TEXT NOT NULL,
	metadata TEXT
);
CREATE INDEX IF NOT EXISTS idx_conv_type_updated ON conversations(type, updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_conv_updated ON conversations(updated_at DESC);
CREATE TABLE IF NOT EXISTS habit_logs (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	completed INTEGER NOT NULL,
	notes TEXT,
	created_at TEXT NOT NULL,
	UNIQUE(habit_id, day)
);
CREATE INDEX IF NOT EXISTS idx_habit_day ON habit_logs(habit_id, day DESC);
CREATE INDEX IF NOT EXISTS idx_day ON habit_logs(day DESC);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %v", ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", ErrUnavailable, err)
	}
	s.db = db

	// Schema creation is idempotent; safe to run on every process start.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: failed to create schema: %v", ErrUnavailable, err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tend init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", ErrUnavailable, err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) SaveConversation(conv models.Conversation) error {
	messagesJSON, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	metadata := conv.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO conversations (id, type, title, created_at, updated_at, messages, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		conv.ID, string(conv.Type), conv.Title,
		conv.CreatedAt.UTC().Format(timeFormat), conv.UpdatedAt.UTC().Format(timeFormat),
		string(messagesJSON), string(metadataJSON),
	)
	return err
}

func (s *SQLiteStore) GetConversation(id string) (models.Conversation, error) {
	row := s.db.QueryRow(`
		SELECT id, type, title, created_at, updated_at, messages, metadata
		FROM conversations WHERE id = ?`, id)

	var conv models.Conversation
	var convType, createdAt, updatedAt, messagesJSON string
	var metadataJSON sql.NullString

	err := row.Scan(&conv.ID, &convType, &conv.Title, &createdAt, &updatedAt, &messagesJSON, &metadataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Conversation{}, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
		}
		return models.Conversation{}, err
	}

	conv.Type = models.ConversationType(convType)
	if conv.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if conv.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(messagesJSON), &conv.Messages); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to parse messages: %w", err)
	}
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &conv.Metadata); err != nil {
			return models.Conversation{}, fmt.Errorf("failed to parse metadata: %w", err)
		}
	}

	return conv, nil
}

func (s *SQLiteStore) ListConversations(convType models.ConversationType, limit int) ([]models.ConversationSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error
	if convType != "" {
		rows, err = s.db.Query(`
			SELECT id, type, title, created_at, updated_at
			FROM conversations WHERE type = ?
			ORDER BY updated_at DESC LIMIT ?`, string(convType), limit)
	} else {
		rows, err = s.db.Query(`
			SELECT id, type, title, created_at, updated_at
			FROM conversations
			ORDER BY updated_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.ConversationSummary
	for rows.Next() {
		var sum models.ConversationSummary
		var typ, createdAt, updatedAt string
		if err := rows.Scan(&sum.ID, &typ, &sum.Title, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sum.Type = models.ConversationType(typ)
		if sum.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if sum.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// SaveHabitLog upserts on (habit_id, day): logging the same day twice keeps
// exactly one row reflecting the latest write.
func (s *SQLiteStore) SaveHabitLog(entry models.HabitLog) error {
	completed := 0
	if entry.Completed {
		completed = 1
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO habit_logs (id, habit_id, day, completed, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.HabitID, entry.Day, completed, entry.Notes,
		entry.CreatedAt.UTC().Format(timeFormat),
	)
	return err
}

func (s *SQLiteStore) GetHabitLog(habitID, day string) (models.HabitLog, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, day, completed, notes, created_at
		FROM habit_logs WHERE habit_id = ? AND day = ?`, habitID, day)

	entry, err := scanHabitLog(row)
	if err == sql.ErrNoRows {
		return models.HabitLog{}, fmt.Errorf("habit log %s/%s: %w", habitID, day, ErrNotFound)
	}
	return entry, err
}

// QueryHabitLogs returns logs in [from, to] ordered by day ascending. An
// empty habitID matches all habits; empty bounds are open.
func (s *SQLiteStore) QueryHabitLogs(habitID, from, to string) ([]models.HabitLog, error) {
	query := "SELECT id, habit_id, day, completed, notes, created_at FROM habit_logs WHERE 1=1"
	var args []any
	if habitID != "" {
		query += " AND habit_id = ?"
		args = append(args, habitID)
	}
	if from != "" {
		query += " AND day >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND day <= ?"
		args = append(args, to)
	}
	query += " ORDER BY day ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitLog
	for rows.Next() {
		entry, err := scanHabitLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabitLog(row rowScanner) (models.HabitLog, error) {
	var entry models.HabitLog
	var completed int
	var notes sql.NullString
	var createdAt string

	err := row.Scan(&entry.ID, &entry.HabitID, &entry.Day, &completed, &notes, &createdAt)
	if err != nil {
		return models.HabitLog{}, err
	}

	entry.Completed = completed != 0
	entry.Notes = notes.String
	if entry.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return models.HabitLog{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return entry, nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
