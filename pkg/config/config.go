package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDir = "sentiviz"

type AppConfig struct {
	Language   string `json:"language" yaml:"language"`
	WindowSize struct {
		Width  int `json:"width" yaml:"width"`
		Height int `json:"height" yaml:"height"`
	} `json:"window_size" yaml:"window_size"`
	RecentFiles []string `json:"recent_files" yaml:"recent_files"`

	// Пути к наборам данных графиков
	BarData    string `json:"bar_data" yaml:"bar_data"`
	BubbleData string `json:"bubble_data" yaml:"bubble_data"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`
	// Seed задает начальные позиции пузырей, 0 - случайные
	Seed int64 `json:"seed" yaml:"seed"`
	// Addr - адрес HTTP сервера
	Addr string `json:"addr" yaml:"addr"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *AppConfig {
	cfg := &AppConfig{
		Language:   "en",
		BarData:    filepath.Join("data", "emotion_words_all.csv"),
		BubbleData: filepath.Join("data", "survey_count.csv"),
		OutputDir:  ".",
		Addr:       ":4430",
	}
	cfg.WindowSize.Width = 1000
	cfg.WindowSize.Height = 700
	return cfg
}

// Path возвращает путь к файлу конфигурации
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "config.json"), nil
}

// LoadConfig читает конфигурацию пользователя. Отсутствующий файл не
// ошибка: возвращаются значения по умолчанию.
func LoadConfig() (*AppConfig, error) {
	configPath, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(configPath)
}

func isYAML(configPath string) bool {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFile читает конфигурацию из файла поверх значений по умолчанию.
// Файлы .yaml и .yml читаются как YAML, остальные как JSON.
func LoadFile(configPath string) (*AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return cfg, nil
}

func SaveConfig(cfg *AppConfig) error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(cfg, configPath)
}

// SaveFile записывает конфигурацию в файл, создавая каталог
func SaveFile(cfg *AppConfig, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(configPath) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// AddRecentFile запоминает открытый файл, последние сверху
func (c *AppConfig) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > 10 {
		files = files[:10]
	}
	c.RecentFiles = files
}
