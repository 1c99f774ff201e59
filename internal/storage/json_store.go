package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jfellows/tend/internal/models"
)

type document struct {
	Version       int                            `json:"version"`
	Conversations map[string]models.Conversation `json:"conversations"`
	HabitLogs     map[string]models.HabitLog     `json:"habit_logs"` // keyed habit_id|day
}

// JSONStore is a single-file JSON alternative to the SQLite store, selected
// when the configured path ends in .json. Intended for inspection and tests,
// not for large histories. Not safe for concurrent use across goroutines or
// processes sharing the same path.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func logKey(habitID, day string) string {
	return habitID + "|" + day
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %v", ErrUnavailable, err)
	}

	if _, err := os.Stat(s.path); err == nil {
		// Already initialized; load rather than clobber.
		return s.Load()
	}

	s.doc = &document{
		Version:       1,
		Conversations: make(map[string]models.Conversation),
		HabitLogs:     make(map[string]models.HabitLog),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.doc != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tend init' first")
		}
		return fmt.Errorf("%w: failed to read storage: %v", ErrUnavailable, err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.doc.Conversations == nil {
		s.doc.Conversations = make(map[string]models.Conversation)
	}
	if s.doc.HabitLogs == nil {
		s.doc.HabitLogs = make(map[string]models.HabitLog)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write storage: %v", ErrUnavailable, err)
	}

	return nil
}

func (s *JSONStore) SaveConversation(conv models.Conversation) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.doc.Conversations[conv.ID] = conv
	return s.save()
}

func (s *JSONStore) GetConversation(id string) (models.Conversation, error) {
	if s.doc == nil {
		return models.Conversation{}, fmt.Errorf("storage not loaded")
	}

	conv, ok := s.doc.Conversations[id]
	if !ok {
		return models.Conversation{}, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}

	return conv, nil
}

func (s *JSONStore) ListConversations(convType models.ConversationType, limit int) ([]models.ConversationSummary, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	if limit <= 0 {
		limit = 10
	}

	var summaries []models.ConversationSummary
	for _, conv := range s.doc.Conversations {
		if convType != "" && conv.Type != convType {
			continue
		}
		summaries = append(summaries, models.ConversationSummary{
			ID:        conv.ID,
			Type:      conv.Type,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}

	return summaries, nil
}

func (s *JSONStore) SaveHabitLog(entry models.HabitLog) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.doc.HabitLogs[logKey(entry.HabitID, entry.Day)] = entry
	return s.save()
}

func (s *JSONStore) GetHabitLog(habitID, day string) (models.HabitLog, error) {
	if s.doc == nil {
		return models.HabitLog{}, fmt.Errorf("storage not loaded")
	}

	entry, ok := s.doc.HabitLogs[logKey(habitID, day)]
	if !ok {
		return models.HabitLog{}, fmt.Errorf("habit log %s/%s: %w", habitID, day, ErrNotFound)
	}

	return entry, nil
}

func (s *JSONStore) QueryHabitLogs(habitID, from, to string) ([]models.HabitLog, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.HabitLog
	for _, entry := range s.doc.HabitLogs {
		if habitID != "" && entry.HabitID != habitID {
			continue
		}
		if from != "" && entry.Day < from {
			continue
		}
		if to != "" && entry.Day > to {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Day < entries[j].Day
	})

	return entries, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
