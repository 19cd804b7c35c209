package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSONFileStore keeps the whole history in a single pretty-printed JSON
// array, rewritten on every append. Good enough for an interactive
// assistant; the postgres store covers anything heavier.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

func (s *JSONFileStore) Append(ctx context.Context, exchange *Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	exchanges, err := s.load()
	if err != nil {
		return err
	}
	exchanges = append(exchanges, *exchange)

	data, err := json.MarshalIndent(exchanges, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}

func (s *JSONFileStore) List(ctx context.Context, limit int) ([]Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exchanges, err := s.load()
	if err != nil {
		return nil, err
	}

	// newest first
	reversed := make([]Exchange, 0, len(exchanges))
	for i := len(exchanges) - 1; i >= 0; i-- {
		reversed = append(reversed, exchanges[i])
	}

	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}

	return reversed, nil
}

// load reads the current history file. A missing file is an empty history;
// a corrupt one is discarded and the history restarts, matching the
// append-only journal's tolerance for partial writes.
func (s *JSONFileStore) load() ([]Exchange, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Exchange{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var exchanges []Exchange
	if err := json.Unmarshal(data, &exchanges); err != nil {
		return []Exchange{}, nil
	}

	return exchanges, nil
}
