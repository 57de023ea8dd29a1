package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaultsWhenFileAbsent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ItemsPerPage != 16 || cfg.NameColumnWidth != 30 {
		t.Fatalf("expected default sizing, got %+v", cfg)
	}
	if len(cfg.TerminalPriority) == 0 {
		t.Fatalf("expected a non-empty default terminal priority list")
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "items_per_page: 5\nname_column_width: 40\neditor: nano\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ItemsPerPage != 5 || cfg.NameColumnWidth != 40 || cfg.Editor != "nano" {
		t.Fatalf("expected values from the explicit file, got %+v", cfg)
	}
}

func TestDefaultEditorFallsBackToVim(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	if got := defaultEditor(); got != "vim" {
		t.Fatalf("expected vim fallback, got %q", got)
	}
}

func TestDefaultEditorPrefersEDITOR(t *testing.T) {
	t.Setenv("EDITOR", "emacs")
	t.Setenv("VISUAL", "")
	if got := defaultEditor(); got != "emacs" {
		t.Fatalf("expected $EDITOR to win, got %q", got)
	}
}
