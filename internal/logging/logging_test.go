package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("debug message")
	Info("info message")
	Warn("warning message", "key", "value")
	Error("error message", "err", os.ErrNotExist)
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{
		Debug:     true,
		ConfigDir: filepath.Join(t.TempDir(), "config"),
	})
	if err != nil {
		t.Fatalf("Init failed in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("debug message in debug mode")
	Info("info message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// Must not panic before Init has run.
	Debug("debug message")
	Info("info message")
	Warn("warning message")
	Error("error message")
}
