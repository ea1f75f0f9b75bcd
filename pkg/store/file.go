package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"datawarden-hq/vigil/pkg/store/codec"
)

// FileBackend persists the ledger as a single compressed blob on disk.
// Writes are atomic: the blob is staged in a temporary file next to the
// target and renamed into place, so a crash mid-save never leaves a
// half-written state file behind.
type FileBackend struct {
	path  string
	codec codec.Config
	mu    sync.Mutex
}

// FileBackendConfig configures the file backend.
type FileBackendConfig struct {
	// Path is where the state blob lives.
	Path string

	// Compression is the codec configuration. Zero value means the
	// default level.
	Compression codec.Config
}

// NewFileBackend creates a file backend, validating the compression level
// and creating the state directory with owner-only permissions.
func NewFileBackend(cfg FileBackendConfig) (*FileBackend, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("state path cannot be empty")
	}
	if cfg.Compression == (codec.Config{}) {
		cfg.Compression = codec.DefaultConfig()
	}
	if err := cfg.Compression.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	return &FileBackend{
		path:  cfg.Path,
		codec: cfg.Compression,
	}, nil
}

// Load reads and decodes the state blob. A missing file is a fresh
// install and yields an empty map.
func (f *FileBackend) Load(_ context.Context) (map[string]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	blob, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]uint64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	totals, err := codec.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("state file %s: %w", f.path, err)
	}
	return totals, nil
}

// Save encodes the totals and replaces the state file atomically.
func (f *FileBackend) Save(_ context.Context, totals map[string]uint64) error {
	blob, err := codec.Encode(totals, f.codec)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".vigil-state-*")
	if err != nil {
		return fmt.Errorf("staging state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting state file mode: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing state file: %w", err)
	}

	return nil
}

// Close releases any resources held by the backend. The file backend
// holds none between operations.
func (f *FileBackend) Close() error {
	return nil
}

// Path returns the state file location. Useful for logs and the CLI.
func (f *FileBackend) Path() string {
	return f.path
}
