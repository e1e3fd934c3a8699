package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webcdu.toml")
	content := "[history]\nmax_entries = 200\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.History.MaxEntries != 200 {
		t.Errorf("max entries = %d, want 200", cfg.History.MaxEntries)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webcdu.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(envHistoryMaxEntries, "7")
	t.Setenv(envLogLevel, "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.History.MaxEntries != 7 {
		t.Errorf("max entries = %d, want 7", cfg.History.MaxEntries)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Log.Level)
	}
}

func TestSanitize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webcdu.toml")
	if err := os.WriteFile(path, []byte("[history]\nmax_entries = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("max entries = %d, want default 50", cfg.History.MaxEntries)
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webcdu.toml")
	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[history]\nmax_entries = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.History.MaxEntries != 99 {
			t.Errorf("reloaded max entries = %d, want 99", cfg.History.MaxEntries)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(filepath.Join(dir, "webcdu.toml"), func(Config) {})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
