package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jfellows/tend/internal/cli"
	"github.com/jfellows/tend/internal/config"
	"github.com/jfellows/tend/internal/logging"
	"github.com/jfellows/tend/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database path (a .json extension selects the JSON store)." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init          cli.InitCmd          `cmd:"" help:"Initialize tend storage."`
	Chat          cli.ChatCmd          `cmd:"" help:"Start an interactive chat session." default:"1"`
	Habits        cli.HabitsCmd        `cmd:"" help:"Show and log tracked habits."`
	Stats         cli.StatsCmd         `cmd:"" help:"Show habit completion stats."`
	Conversations cli.ConversationsCmd `cmd:"" help:"Browse saved conversations."`
	Pdf           cli.PdfCmd           `cmd:"" help:"Run PDF operations."`
	Backup        cli.BackupCmd        `cmd:"" help:"Manage database backups."`
	Doctor        cli.DoctorCmd        `cmd:"" help:"Run health diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tend"),
		kong.Description("Personal productivity assistant: chat, habits, and PDF tools"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DBPath
	if CLI.DB != "" {
		dbPath = CLI.DB
	}

	if err := logging.Init(logging.Config{
		Debug:     CLI.Debug || cfg.Debug,
		ConfigDir: filepath.Dir(dbPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logging.Debug("configuration loaded", "provider", cfg.Provider, "db", dbPath)

	// Storage backend follows the file extension.
	var store storage.Provider
	if strings.HasSuffix(dbPath, ".json") {
		store = storage.NewJSONStore(dbPath)
	} else {
		store = storage.NewSQLiteStore(dbPath)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
	}

	if err := ctx.Run(appCtx); err != nil {
		logging.Error("command failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
