package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
)

type fileContextRepository struct {
	path string
}

// NewFileContextRepository persists the context store as one JSON document at
// path.
func NewFileContextRepository(path string) repository.ContextRepository {
	return &fileContextRepository{path: path}
}

// SaveAll writes the store atomically: a temp file in the same directory is
// renamed over the previous document, so a crash mid-write leaves the old
// store intact.
func (f *fileContextRepository) SaveAll(ctx context.Context, store entity.ContextStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal context store: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create context dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "contexts-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace context store: %w", err)
	}
	return nil
}

// LoadAll returns the persisted store; a missing file yields an empty store.
func (f *fileContextRepository) LoadAll(ctx context.Context) (entity.ContextStore, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return entity.ContextStore{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read context store: %w", err)
	}

	var store entity.ContextStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("decode context store: %w", err)
	}
	if store == nil {
		store = entity.ContextStore{}
	}
	return store, nil
}
