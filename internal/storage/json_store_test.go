package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfellows/tend/internal/models"
)

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	return store
}

func TestJSONStore_ConversationRoundTrip(t *testing.T) {
	store := setupTestJSONStore(t)

	conv := testConversation("conv-1")
	if err := store.SaveConversation(conv); err != nil {
		t.Fatalf("failed to save conversation: %v", err)
	}

	got, err := store.GetConversation("conv-1")
	if err != nil {
		t.Fatalf("failed to load conversation: %v", err)
	}
	if got.ID != conv.ID || got.Type != conv.Type || len(got.Messages) != 2 {
		t.Errorf("loaded conversation differs: %+v", got)
	}

	// Reload from disk through a fresh store
	store2 := NewJSONStore(store.GetConfigPath())
	if err := store2.Load(); err != nil {
		t.Fatalf("failed to load store from disk: %v", err)
	}
	got2, err := store2.GetConversation("conv-1")
	if err != nil {
		t.Fatalf("failed to load conversation after reload: %v", err)
	}
	if got2.Messages[1].Content != "Great job!" {
		t.Errorf("messages did not survive disk round trip: %+v", got2.Messages)
	}
}

func TestJSONStore_HabitLogUpsert(t *testing.T) {
	store := setupTestJSONStore(t)

	entry := models.HabitLog{
		ID: "log-1", HabitID: "workout", Day: "2025-10-05",
		Completed: true, CreatedAt: time.Now().UTC(),
	}
	if err := store.SaveHabitLog(entry); err != nil {
		t.Fatalf("failed to save habit log: %v", err)
	}

	entry.ID = "log-2"
	entry.Completed = false
	if err := store.SaveHabitLog(entry); err != nil {
		t.Fatalf("failed to upsert habit log: %v", err)
	}

	logs, err := store.QueryHabitLogs("workout", "", "")
	if err != nil {
		t.Fatalf("failed to query habit logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Completed {
		t.Errorf("expected single log with latest write, got %+v", logs)
	}
}

func TestJSONStore_NotFound(t *testing.T) {
	store := setupTestJSONStore(t)

	if _, err := store.GetConversation("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for conversation, got %v", err)
	}
	if _, err := store.GetHabitLog("workout", "2025-10-05"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for habit log, got %v", err)
	}
}
