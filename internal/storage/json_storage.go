package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"scamshield/internal/core/ports"
	"sync"
)

// JSONStorage keeps every key in one JSON object on disk, rewritten on each SetItem.
type JSONStorage struct {
	FilePath string
	mu       sync.RWMutex
	Data     map[string]string
}

func NewJSONStorage(filePath string) (*JSONStorage, error) {
	s := &JSONStorage{
		FilePath: filePath,
		Data:     make(map[string]string),
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := s.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

var _ ports.KeyValueStore = (*JSONStorage)(nil)

func (s *JSONStorage) loadFromFile() error {
	file, err := os.ReadFile(s.FilePath)
	if err != nil {
		return err
	}
	if len(file) == 0 {
		return nil
	}
	if err := json.Unmarshal(file, &s.Data); err != nil {
		return err
	}
	// a file holding "null" decodes to a nil map
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	return nil
}

func (s *JSONStorage) saveToFile() error {
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.FilePath)
}

func (s *JSONStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.Data[key]
	return v, ok, nil
}

func (s *JSONStorage) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.Data[key]
	s.Data[key] = value
	if err := s.saveToFile(); err != nil {
		if had {
			s.Data[key] = prev
		} else {
			delete(s.Data, key)
		}
		return err
	}
	return nil
}
