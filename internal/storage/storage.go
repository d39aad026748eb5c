package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/logging"
)

const AccountsFile = "tempmail_accounts.json"

// FileStore keeps accounts in a single pretty-printed JSON document.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the account document next to the running executable.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return AccountsFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), AccountsFile)
}

func (s *FileStore) Path() string {
	return s.path
}

// Load never fails: a missing or corrupted document reads as an empty store.
func (s *FileStore) Load() Accounts {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Debugf("reading %s: %v, starting with an empty store", s.path, err)
		}
		return Accounts{}
	}

	return decode(data, s.path)
}

// decode reads the document entry by entry. A malformed entry is dropped on
// its own; the rest of the store survives it.
func decode(data []byte, origin string) Accounts {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Accounts{}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.Debugf("store %s is corrupted (%v), starting with an empty store", origin, err)
		return Accounts{}
	}

	accounts := make(Accounts, len(raw))
	for key, entry := range raw {
		var acc Account
		if err := json.Unmarshal(entry, &acc); err != nil {
			logging.Debugf("store %s: dropping unreadable entry %q: %v", origin, key, err)
			continue
		}
		if acc.Address == "" {
			acc.Address = key
		}
		if acc.Address != key {
			logging.Debugf("store %s: dropping entry %q with mismatched address %q", origin, key, acc.Address)
			continue
		}
		accounts[key] = acc
	}
	return accounts
}

// Save replaces the document through a temp file and rename, so a reader
// sees either the old or the new content.
func (s *FileStore) Save(accounts Accounts) error {
	if accounts == nil {
		accounts = Accounts{}
	}

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync accounts: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		cleanup()
		return fmt.Errorf("failed to set store permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}

// MemoryStore is a Store without disk state.
type MemoryStore struct {
	mu       sync.Mutex
	accounts Accounts
	saves    int
}

func NewMemoryStore(accounts ...Account) *MemoryStore {
	m := &MemoryStore{accounts: Accounts{}}
	for _, acc := range accounts {
		m.accounts[acc.Address] = acc
	}
	return m
}

func (m *MemoryStore) Load() Accounts {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(Accounts, len(m.accounts))
	for k, v := range m.accounts {
		out[k] = v
	}
	return out
}

func (m *MemoryStore) Save(accounts Accounts) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts = make(Accounts, len(accounts))
	for k, v := range accounts {
		m.accounts[k] = v
	}
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
