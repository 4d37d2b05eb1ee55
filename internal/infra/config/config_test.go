package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("не удалось записать конфиг: %v", err)
	}
	return path
}

// TestLoadConfig_Defaults проверяет значения по умолчанию для незаданных полей.
func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://api.example.com/
telegram_bot:
  token: from-file
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("завершающий слэш не удалён: %q", cfg.API.BaseURL)
	}
	if cfg.API.FlashcardTimeout != 20*time.Second {
		t.Errorf("flashcard_timeout = %s, ожидалось 20s", cfg.API.FlashcardTimeout)
	}
	if cfg.Storage.Local != StorageMemory || cfg.Storage.Session != StorageMemory {
		t.Errorf("ожидались memory-хранилища, получено %+v", cfg.Storage)
	}
	if cfg.Share.BaseURL != DefaultShareBaseURL {
		t.Errorf("share.base_url = %q", cfg.Share.BaseURL)
	}
}

// TestLoadConfig_EnvOverrides проверяет, что переменные окружения перекрывают файл.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://api.example.com
  timeout: 5s
telegram_bot:
  token: from-file
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("FLASHCARD_TIMEOUT", "7")
	t.Setenv("STORAGE_LOCAL", StorageJSON)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}
	if cfg.TelegramBot.Token != "from-env" {
		t.Errorf("token = %q", cfg.TelegramBot.Token)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", cfg.API.Timeout)
	}
	if cfg.API.FlashcardTimeout != 7*time.Second {
		t.Errorf("flashcard_timeout = %s", cfg.API.FlashcardTimeout)
	}
	if cfg.Storage.Local != StorageJSON {
		t.Errorf("storage.local = %q", cfg.Storage.Local)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"no base url":     "storage:\n  local: memory\n",
		"unknown backend": "api:\n  base_url: http://x\nstorage:\n  local: sqlite\n",
		"redis no addr":   "api:\n  base_url: http://x\nstorage:\n  session: redis\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Error("ожидалась ошибка конфигурации")
			}
		})
	}
}
