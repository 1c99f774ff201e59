package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/jfellows/tend/internal/backup"
	"github.com/jfellows/tend/internal/provider"
	"github.com/jfellows/tend/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	// Check 2: Provider configuration valid
	if err := ctx.Config.Validate(); err != nil {
		fmt.Printf("❌ Provider configuration: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Provider configuration: OK (%s)\n", ctx.Config.Provider)
	}

	// Check 3: Provider reachable
	if err := checkProviderReachable(ctx); err != nil {
		fmt.Printf("❌ Provider reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Provider reachable: OK\n")
	}

	// Check 4: Ollama process present (only relevant for the local provider)
	if ctx.Config.Provider == "ollama" {
		if err := checkOllamaProcess(); err != nil {
			fmt.Printf("⚠ Ollama process: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Ollama process: OK\n")
		}
	}

	// Check 5: PDF workspace writable
	if err := checkWorkspaceWritable(ctx); err != nil {
		fmt.Printf("❌ PDF workspace writable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ PDF workspace writable: OK\n")
	}

	// Check 6: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkProviderReachable(ctx *Context) error {
	prov, err := provider.New(ctx.Config)
	if err != nil {
		return err
	}
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return prov.Init(initCtx)
}

func checkOllamaProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	for _, p := range procs {
		if strings.Contains(strings.ToLower(p.Executable()), "ollama") {
			return nil
		}
	}
	return fmt.Errorf("no ollama process found - start it with 'ollama serve'")
}

func checkWorkspaceWritable(ctx *Context) error {
	dir := ctx.Config.WorkspaceDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create workspace %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".tend-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("cannot write to workspace %s: %w", dir, err)
	}
	return os.Remove(probe)
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'tend backup create'")
	}
	return nil
}
