package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed locales/*.json
var builtin embed.FS

// DefaultLanguage используется, если язык не задан
const DefaultLanguage = "en"

type Locale struct {
	mu           sync.RWMutex
	lang         string
	translations map[string]string
}

// NewLocale загружает словарь из JSON файла
func NewLocale(filePath string) (*Locale, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	translations, err := decode(file)
	if err != nil {
		return nil, err
	}

	return &Locale{lang: strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)), translations: translations}, nil
}

// NewBuiltinLocale загружает встроенный словарь языка
func NewBuiltinLocale(lang string) (*Locale, error) {
	l := &Locale{}
	if err := l.SetLanguage(lang, ""); err != nil {
		return nil, err
	}
	return l, nil
}

// SetLanguage переключает язык. Если dir не пуст, словарь берется из
// dir/<lang>.json, иначе из встроенных.
func (l *Locale) SetLanguage(lang, dir string) error {
	if lang == "" {
		lang = DefaultLanguage
	}

	var (
		r   io.ReadCloser
		err error
	)
	if dir != "" {
		r, err = os.Open(filepath.Join(dir, lang+".json"))
	} else {
		r, err = builtin.Open("locales/" + lang + ".json")
	}
	if err != nil {
		return fmt.Errorf("language %q: %w", lang, err)
	}
	defer r.Close()

	translations, err := decode(r)
	if err != nil {
		return fmt.Errorf("language %q: %w", lang, err)
	}

	l.mu.Lock()
	l.lang = lang
	l.translations = translations
	l.mu.Unlock()
	return nil
}

// Language возвращает текущий язык
func (l *Locale) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

func (l *Locale) Translate(key string) string {
	if l == nil {
		return key
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if translation, ok := l.translations[key]; ok {
		return translation
	}
	return key
}

func decode(r io.Reader) (map[string]string, error) {
	var translations map[string]string
	if err := json.NewDecoder(r).Decode(&translations); err != nil {
		return nil, err
	}
	return translations, nil
}
