// Package storage keeps uploaded recipe images on the local filesystem and
// knows how to validate and describe them.
package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInvalidKey is returned for empty keys or keys escaping the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage stores blobs under a root directory and serves them under a base URL.
// Safe for concurrent use.
type Storage struct {
	root    string
	baseURL string
	mu      sync.Mutex
}

// New creates the root directory if needed.
// baseURL is the public prefix the root is served under (e.g. /media/).
func New(root, baseURL string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Storage{root: root, baseURL: baseURL}, nil
}

// Root returns the directory blobs are stored under.
func (s *Storage) Root() string {
	return s.root
}

// Path returns the filesystem path for key.
func (s *Storage) Path(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + key)
	if clean == "/" || clean[1:] != key {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Save writes data under key, creating parent directories.
func (s *Storage) Save(key string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}
	p, err := s.Path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

// Delete removes the blob under key. A missing blob is not an error.
func (s *Storage) Delete(key string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// URL returns the public URL of key.
func (s *Storage) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + strings.Join(segments, "/")
}
