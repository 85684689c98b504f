package localization

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLocale(t *testing.T) {
	l, err := NewBuiltinLocale("ru")
	if err != nil {
		t.Fatalf("NewBuiltinLocale failed: %v", err)
	}
	if got := l.Translate("Positive"); got != "Позитивные" {
		t.Errorf("Translate(Positive) = %q", got)
	}
	if got := l.Translate("no such key"); got != "no such key" {
		t.Errorf("missing keys must fall back to the key, got %q", got)
	}

	if err := l.SetLanguage("en", ""); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	if l.Language() != "en" || l.Translate("Positive") != "Positive" {
		t.Errorf("language switch did not apply")
	}

	if err := l.SetLanguage("xx", ""); err == nil {
		t.Errorf("expected error for unknown language")
	}
}

func TestLocaleFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "de.json"), []byte(`{"Positive":"Positiv"}`), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := NewLocale(filepath.Join(dir, "de.json"))
	if err != nil {
		t.Fatalf("NewLocale failed: %v", err)
	}
	if got := l.Translate("Positive"); got != "Positiv" {
		t.Errorf("Translate = %q", got)
	}

	var nilLocale *Locale
	if got := nilLocale.Translate("Positive"); got != "Positive" {
		t.Errorf("nil locale must return the key")
	}
}
