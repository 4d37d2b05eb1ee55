package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONStore хранит данные в JSON-файле
type JSONStore struct {
	filename string
	mu       sync.Mutex
}

// NewJSONStore создаёт JSONStore и пустой файл, если его ещё нет.
func NewJSONStore(filename string) (*JSONStore, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if err := os.WriteFile(filename, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("не удалось создать файл %s: %w", filename, err)
		}
	}
	return &JSONStore{filename: filename}, nil
}

// load и save вызываются под j.mu
func (j *JSONStore) load() (map[string]string, error) {
	data, err := os.ReadFile(j.filename)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл %s: %w", j.filename, err)
	}
	m := make(map[string]string)
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("не удалось разобрать JSON: %w", err)
	}
	return m, nil
}

func (j *JSONStore) save(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать данные: %w", err)
	}
	if err := os.WriteFile(j.filename, data, 0o644); err != nil {
		return fmt.Errorf("не удалось записать файл %s: %w", j.filename, err)
	}
	return nil
}

func (j *JSONStore) Get(_ context.Context, key string) (string, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (j *JSONStore) Set(_ context.Context, key, value string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	m[key] = value
	return j.save(m)
}

func (j *JSONStore) Remove(_ context.Context, key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	delete(m, key)
	return j.save(m)
}
