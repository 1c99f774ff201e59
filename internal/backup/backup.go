// Package backup creates and restores point-in-time copies of the SQLite
// database. Backups live in a backups/ directory next to the database file
// and are rotated beyond a retention limit.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jfellows/tend/internal/logging"
)

const (
	// MaxBackups is how many backups to keep before rotation deletes the oldest.
	MaxBackups = 14

	backupDirName = "backups"
	filePrefix    = "tend-"
	fileSuffix    = ".db"
	timestampFmt  = "20060102-150405"
)

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	dbPath    string
	backupDir string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), backupDirName),
	}
}

func (m *Manager) BackupDir() string { return m.backupDir }

// Create writes a new backup and rotates old ones. Returns the backup path.
func (m *Manager) Create() (string, error) {
	return m.create(true)
}

func (m *Manager) create(rotate bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	name := filePrefix + time.Now().Format(timestampFmt) + fileSuffix
	dest := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s",
			filePrefix, time.Now().Format(timestampFmt), counter, fileSuffix))
		if counter > 100 {
			return "", fmt.Errorf("could not generate a unique backup filename")
		}
	}

	if err := m.dump(dest); err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}

	if rotate {
		if err := m.rotate(); err != nil {
			// A failed rotation should not fail the backup itself.
			logging.Warn("failed to rotate old backups", "err", err)
		}
	}
	logging.Info("backup created", "path", dest)
	return dest, nil
}

// dump copies the live database with VACUUM INTO, which produces a clean
// consistent snapshot even while the database is open elsewhere. Falls back
// to a plain file copy if VACUUM INTO is unsupported.
func (m *Manager) dump(dest string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		// Drop the -N uniqueness counter if present.
		if idx := strings.LastIndex(stamp, "-"); idx > len(timestampFmt)-1 {
			stamp = stamp[:idx]
		}
		ts, err := time.Parse(timestampFmt, stamp)
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: ts, Size: fi.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the database with the given backup. The current database
// is backed up first so a bad restore can be undone.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		safety, err := m.create(false)
		if err != nil {
			return fmt.Errorf("backup current database before restore: %w", err)
		}
		fmt.Printf("Created backup of current database: %s\n", filepath.Base(safety))
	}

	// Copy then rename so the swap is atomic.
	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return fmt.Errorf("copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("restore database: %w", err)
	}
	return nil
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
