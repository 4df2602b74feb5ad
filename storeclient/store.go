package storeclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yashrajoria/streetwear-backend/models"
)

// LocalStore keeps the guest session id and the last known cart on the
// client, so cart mutations survive a backend outage.
type LocalStore interface {
	SessionID() (string, error)
	SaveSessionID(id string) error
	LoadCart() (*models.Cart, error)
	SaveCart(cart *models.Cart) error
}

// MemoryStore is a process-local LocalStore.
type MemoryStore struct {
	mu        sync.Mutex
	sessionID string
	cart      *models.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SessionID() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID, nil
}

func (m *MemoryStore) SaveSessionID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = id
	return nil
}

func (m *MemoryStore) LoadCart() (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCart(m.cart), nil
}

func (m *MemoryStore) SaveCart(cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cloneCart(cart)
	return nil
}

// FileStore persists the session id and cart as one JSON document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileState struct {
	SessionID string       `json:"session_id"`
	Cart      *models.Cart `json:"cart,omitempty"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) SessionID() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.read()
	if err != nil {
		return "", err
	}
	return st.SessionID, nil
}

func (f *FileStore) SaveSessionID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.read()
	if err != nil {
		return err
	}
	st.SessionID = id
	return f.write(st)
}

func (f *FileStore) LoadCart() (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.read()
	if err != nil {
		return nil, err
	}
	return st.Cart, nil
}

func (f *FileStore) SaveCart(cart *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.read()
	if err != nil {
		return err
	}
	st.Cart = cart
	return f.write(st)
}

func (f *FileStore) read() (*fileState, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local cart: %w", err)
	}
	var st fileState
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode local cart: %w", err)
	}
	return &st, nil
}

// write replaces the file atomically.
func (f *FileStore) write(st *fileState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create local cart dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write local cart: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func cloneCart(c *models.Cart) *models.Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = append([]models.CartLine(nil), c.Items...)
	return &cp
}
