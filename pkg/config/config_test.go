package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Language != "en" || cfg.Addr != ":4430" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Language = "ru"
	cfg.Seed = 7
	cfg.AddRecentFile("a.csv")
	cfg.AddRecentFile("b.csv")
	cfg.AddRecentFile("a.csv")

	if err := SaveFile(cfg, p); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	got, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got.Language != "ru" || got.Seed != 7 {
		t.Errorf("unexpected config: %+v", got)
	}
	if len(got.RecentFiles) != 2 || got.RecentFiles[0] != "a.csv" {
		t.Errorf("unexpected recent files: %v", got.RecentFiles)
	}
	if got.BarData == "" {
		t.Errorf("fields absent from the file must keep defaults")
	}
}

func TestYAMLConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("language: ru\nbar_data: words.xlsx\nwindow_size:\n  width: 640\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Language != "ru" || cfg.BarData != "words.xlsx" || cfg.WindowSize.Width != 640 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Addr != ":4430" {
		t.Errorf("absent keys must keep defaults, addr %q", cfg.Addr)
	}

	cfg.Seed = 3
	if err := SaveFile(cfg, p); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(p)
	if !strings.Contains(string(data), "seed: 3") {
		t.Errorf("expected YAML output, got %s", data)
	}
}

func TestBrokenConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(p); err == nil {
		t.Errorf("expected parse error")
	}
}
