package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tend.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE conversations (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT,
		messages TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create test table: %v", err)
	}
	_, err = db.Exec(`INSERT INTO conversations (id, type, title, messages) VALUES
		('c1', 'general', 'first', '[]'),
		('c2', 'daily_checkin', 'second', '[]')`)
	if err != nil {
		t.Fatalf("insert test data: %v", err)
	}
	return dbPath
}

func countRows(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&count); err != nil {
		t.Fatalf("query database: %v", err)
	}
	return count
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
	if got := countRows(t, backupPath); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
	if dir := filepath.Dir(backupPath); dir != mgr.BackupDir() {
		t.Errorf("backup written to %s, want %s", dir, mgr.BackupDir())
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestList(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be non-zero")
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Mutate the live database after the backup was taken.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if _, err := db.Exec("DELETE FROM conversations"); err != nil {
		t.Fatalf("delete rows: %v", err)
	}
	db.Close()

	if got := countRows(t, dbPath); got != 0 {
		t.Fatalf("expected empty table before restore, got %d rows", got)
	}
	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("restored database has %d rows, want 2", got)
	}
}

func TestRestore_InvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bad := filepath.Join(t.TempDir(), "bad.db")
	if err := os.WriteFile(bad, []byte("not a database"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Restore(bad); err == nil {
		t.Fatal("expected error for invalid backup file")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database should be untouched, got %d rows", got)
	}
}

func TestRestore_MissingBackup(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if err := mgr.Restore("/no/such/backup.db"); err == nil {
		t.Fatal("expected error for missing backup file")
	}
}
