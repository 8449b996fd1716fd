package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileProvider implements Provider with one file per key under a data
// directory. Writes go through a temp file and rename so a crashed write
// never leaves a half-written value behind.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a Provider rooted at dir, creating it if needed.
func NewFileProvider(dir string) (*FileProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Key: dir, Err: err}
	}
	return &FileProvider{dir: dir}, nil
}

func (p *FileProvider) path(key string) string {
	return filepath.Join(p.dir, key+".json")
}

// Get retrieves the value under key.
// PRE: key names a file-safe identifier
// POST: Returns (value, true) when present, ("", false) when absent
func (p *FileProvider) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(p.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &IOError{Op: "get", Key: key, Err: err}
	}
	return string(data), true, nil
}

// Set writes the value under key via temp file and rename.
// PRE: key names a file-safe identifier
// POST: Value is persisted atomically
func (p *FileProvider) Set(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(p.dir, key+"-*.tmp")
	if err != nil {
		return &IOError{Op: "set", Key: key, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "set", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "set", Key: key, Err: err}
	}
	if err := os.Rename(tmpName, p.path(key)); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes the key's file.
// PRE: key names a file-safe identifier
// POST: Key is absent; deleting an absent key succeeds
func (p *FileProvider) Delete(_ context.Context, key string) error {
	err := os.Remove(p.path(key))
	if err != nil && !os.IsNotExist(err) {
		return &IOError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
