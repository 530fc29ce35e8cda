package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ivlev/mte/internal/model"
	"github.com/ivlev/mte/internal/project"
)

// DefaultKey names the autosave slot.
const DefaultKey = "mte_autosave_v3"

// FileStore keeps the autosaved project as <Dir>/<Key>.json.
type FileStore struct {
	Dir string
	Key string
}

// NewFileStore returns a store under dir; an empty key uses DefaultKey.
func NewFileStore(dir, key string) *FileStore {
	if key == "" {
		key = DefaultKey
	}
	return &FileStore{Dir: dir, Key: key}
}

// Path of the autosave file.
func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, s.Key+".json")
}

// Load reads the autosaved project.
// If the file does not exist, it returns nil and no error.
// If the file exists but cannot be parsed, it returns an error so callers can log it.
func (s *FileStore) Load() (*model.Project, error) {
	f, err := os.Open(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open autosave: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read autosave: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	p, err := project.Import(data)
	if err != nil {
		return nil, fmt.Errorf("decode autosave: %w", err)
	}
	return &p, nil
}

// Save writes p atomically.
func (s *FileStore) Save(p model.Project) error {
	return project.WriteFile(p, s.Path())
}

// MemoryStore keeps the encoded document in memory. Useful for hosts without
// a writable disk and for tests.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func (m *MemoryStore) Load() (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	p, err := project.Import(m.data)
	if err != nil {
		return nil, fmt.Errorf("decode autosave: %w", err)
	}
	return &p, nil
}

func (m *MemoryStore) Save(p model.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode autosave: %w", err)
	}
	m.mu.Lock()
	m.data = data
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves returns how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetRaw replaces the stored bytes, bypassing encoding.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}
