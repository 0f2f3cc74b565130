// internal/cart/store.go
package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Store is the persistence port injected into a Cart. Implementations must
// return an empty State, not an error, when nothing has been saved yet.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// MemoryStore keeps cart state for the lifetime of the process.
type MemoryStore struct {
	state State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (State, error) {
	return s.state, nil
}

func (s *MemoryStore) Save(state State) error {
	s.state = state
	return nil
}

// FileStore persists cart state as JSON on disk, the server-side analogue of
// the storefront's local-storage cart.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, nil
		}
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

func (s *FileStore) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
