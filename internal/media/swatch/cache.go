package swatch

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache keeps rendered PNG strips on disk, one file per palette.
// Safe for concurrent use.
type Cache struct {
	dir string
	mu  sync.RWMutex
}

// NewCache creates a cache in {basePath}/swatches, creating the directory if needed.
func NewCache(basePath string) (*Cache, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	dir := filepath.Join(basePath, "swatches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create swatches directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// Save stores png data for a palette.
func (c *Cache) Save(id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.WriteFile(c.Path(id), data, 0o644); err != nil {
		return fmt.Errorf("write swatch: %w", err)
	}
	return nil
}

// Get returns the cached PNG. The error wraps fs.ErrNotExist on a miss.
func (c *Cache) Get(id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.Path(id))
	if err != nil {
		return nil, fmt.Errorf("read swatch %s: %w", id, err)
	}
	return data, nil
}

// Delete removes a palette's PNG. Missing files are not an error.
func (c *Cache) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.Path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete swatch: %w", err)
	}
	return nil
}

// Hash returns the hex SHA-256 of data, used as an ETag.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Path returns the file path for a palette's PNG.
func (c *Cache) Path(id string) string {
	return filepath.Join(c.dir, id+".png")
}
