package conversation

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfellows/tend/internal/models"
	"github.com/jfellows/tend/internal/storage"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// Clock advances one second per call so updated_at moves between writes.
	base := time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	calls := 0
	return NewManagerAt(store, func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	})
}

func TestCreate_AllValidTypes(t *testing.T) {
	mgr := setupManager(t)

	for _, typ := range models.ConversationTypes {
		conv, err := mgr.Create(string(typ), "")
		if err != nil {
			t.Fatalf("create(%s) failed: %v", typ, err)
		}
		if conv.Type != typ {
			t.Errorf("expected type %s, got %s", typ, conv.Type)
		}
		if len(conv.Messages) != 0 {
			t.Errorf("expected empty transcript for new %s conversation", typ)
		}
		if conv.ID == "" {
			t.Error("expected generated id")
		}
	}
}

func TestCreate_InvalidType(t *testing.T) {
	mgr := setupManager(t)

	_, err := mgr.Create("standup", "")
	if !errors.Is(err, models.ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestAppendMessage_PreservesOrder(t *testing.T) {
	mgr := setupManager(t)

	conv, err := mgr.Create("daily_checkin", "Oct 5 check-in")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := mgr.AppendMessage(conv.ID, models.RoleUser, "Did my workout"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := mgr.AppendMessage(conv.ID, models.RoleAssistant, "Great job!"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	got, err := mgr.Get(conv.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	want := []models.Message{
		{Role: models.RoleUser, Content: "Did my workout"},
		{Role: models.RoleAssistant, Content: "Great job!"},
	}
	if len(got.Messages) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got.Messages))
	}
	for i := range want {
		if got.Messages[i] != want[i] {
			t.Errorf("message %d differs: got %+v, want %+v", i, got.Messages[i], want[i])
		}
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("expected updated_at (%v) strictly after created_at (%v)", got.UpdatedAt, got.CreatedAt)
	}
}

func TestAppendMessage_NotFound(t *testing.T) {
	mgr := setupManager(t)

	_, err := mgr.AppendMessage("missing", models.RoleUser, "hello")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecent_SummariesOnly(t *testing.T) {
	mgr := setupManager(t)

	a, _ := mgr.Create("general", "first")
	b, _ := mgr.Create("goals", "second")
	if _, err := mgr.AppendMessage(a.ID, models.RoleUser, "bump"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	summaries, err := mgr.ListRecent("", 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	// The appended-to conversation was updated last
	if summaries[0].ID != a.ID {
		t.Errorf("expected most recently updated first, got %s", summaries[0].ID)
	}
	if summaries[1].ID != b.ID {
		t.Errorf("expected %s second, got %s", b.ID, summaries[1].ID)
	}
}

func TestSetTitle(t *testing.T) {
	mgr := setupManager(t)

	conv, _ := mgr.Create("routine", "")
	if _, err := mgr.SetTitle(conv.ID, "Morning routine"); err != nil {
		t.Fatalf("set title failed: %v", err)
	}

	got, err := mgr.Get(conv.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Title != "Morning routine" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
}

func TestLatest(t *testing.T) {
	mgr := setupManager(t)

	if _, err := mgr.Latest(""); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}

	mgr.Create("general", "older")
	newer, _ := mgr.Create("daily_checkin", "newer")
	if _, err := mgr.AppendMessage(newer.ID, models.RoleUser, "hi"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	got, err := mgr.Latest("")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("expected latest conversation %s, got %s", newer.ID, got.ID)
	}
	if len(got.Messages) != 1 {
		t.Errorf("expected full transcript from Latest, got %d messages", len(got.Messages))
	}
}
