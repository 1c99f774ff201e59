package conversation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/storage"
)

// Manager owns conversation records: it is the only writer of the
// conversations table. Every mutating call persists synchronously before
// returning.
type Manager struct {
	store storage.Provider
	now   func() time.Time
}

func NewManager(store storage.Provider) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
	}
}

// NewManagerAt creates a manager with a fixed clock, for tests.
func NewManagerAt(store storage.Provider, now func() time.Time) *Manager {
	return &Manager{store: store, now: now}
}

// Create starts a new conversation with an empty transcript and persists it
// immediately. The type must belong to the closed type set.
func (m *Manager) Create(convType, title string) (models.Conversation, error) {
	typ, err := models.ParseConversationType(convType)
	if err != nil {
		return models.Conversation{}, err
	}

	now := m.now().UTC()
	conv := models.Conversation{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  map[string]any{},
	}

	if err := m.store.SaveConversation(conv); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to persist conversation: %w", err)
	}

	return conv, nil
}

// AppendMessage appends one turn to the transcript, refreshes updated_at and
// persists. Transcripts are append-only; there is no edit or removal path.
func (m *Manager) AppendMessage(id string, role models.Role, content string) (models.Conversation, error) {
	conv, err := m.store.GetConversation(id)
	if err != nil {
		return models.Conversation{}, err
	}

	conv.Messages = append(conv.Messages, models.Message{Role: role, Content: content})
	conv.UpdatedAt = m.now().UTC()

	if err := m.store.SaveConversation(conv); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to persist conversation: %w", err)
	}

	return conv, nil
}

// SetTitle renames a conversation. Titles are the only mutable field besides
// the transcript.
func (m *Manager) SetTitle(id, title string) (models.Conversation, error) {
	conv, err := m.store.GetConversation(id)
	if err != nil {
		return models.Conversation{}, err
	}

	conv.Title = title
	conv.UpdatedAt = m.now().UTC()

	if err := m.store.SaveConversation(conv); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to persist conversation: %w", err)
	}

	return conv, nil
}

// Get loads a full conversation by id.
func (m *Manager) Get(id string) (models.Conversation, error) {
	return m.store.GetConversation(id)
}

// ListRecent returns summaries ordered most-recently-updated first, without
// loading transcripts. An empty convType matches all types.
func (m *Manager) ListRecent(convType models.ConversationType, limit int) ([]models.ConversationSummary, error) {
	return m.store.ListConversations(convType, limit)
}

// Latest returns the most recently updated conversation with its full
// transcript, or storage.ErrNotFound if none exist.
func (m *Manager) Latest(convType models.ConversationType) (models.Conversation, error) {
	summaries, err := m.store.ListConversations(convType, 1)
	if err != nil {
		return models.Conversation{}, err
	}
	if len(summaries) == 0 {
		return models.Conversation{}, storage.ErrNotFound
	}
	return m.store.GetConversation(summaries[0].ID)
}
