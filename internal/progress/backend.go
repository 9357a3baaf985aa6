package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Backend is the minimal key-value persistence contract.
type Backend interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (float64, bool, error)
	Set(key string, value float64) error
}

// ErrNotNumeric is returned when a stored value cannot be parsed.
var ErrNotNumeric = errors.New("stored value is not numeric")

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]float64
	writes int
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]float64)}
}

// Get implements Backend.
func (b *MemoryBackend) Get(key string) (float64, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok, nil
}

// Set implements Backend.
func (b *MemoryBackend) Set(key string, value float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	b.writes++
	return nil
}

// Writes returns how many times Set was called.
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// FileBackend stores values as strings in a YAML document. Every Set
// rewrites the file through a temporary file and a rename.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend creates a backend persisting to path. The file is created
// on the first Set.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Get implements Backend.
func (b *FileBackend) Get(key string) (float64, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	values, err := b.read()
	if err != nil {
		return 0, false, err
	}
	raw, ok := values[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("key %q: %w", key, ErrNotNumeric)
	}
	return v, true, nil
}

// Set implements Backend.
func (b *FileBackend) Set(key string, value float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	values, err := b.read()
	if err != nil {
		// A corrupt document is replaced rather than blocking every save.
		values = make(map[string]string)
	}
	values[key] = strconv.FormatFloat(value, 'g', -1, 64)

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (b *FileBackend) read() (map[string]string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return values, nil
}
