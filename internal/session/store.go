package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when a key has never been set or was deleted.
var ErrNotFound = errors.New("session key not found")

// Store is the narrow device key-value surface the session layer needs.
// Production uses FileStore; tests use MemStore.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps all keys in one JSON file. The file stands in for the
// platform secure storage a device client would use.
// Mutex is required because Go maps are NOT thread-safe.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	values   map[string]string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	fs := &FileStore{
		filePath: filepath.Join(dir, "session.json"),
		values:   make(map[string]string),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	value, ok := fs.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	return fs.save()
}

func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.save()
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &fs.values)
}

func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return err
	}
	// 0600: the token is a credential
	return os.WriteFile(fs.filePath, data, 0600)
}

// MemStore is the in-memory test backend.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (ms *MemStore) Get(key string) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	value, ok := ms.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (ms *MemStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}
