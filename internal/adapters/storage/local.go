package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localDisk writes files below root and serves them from baseURL
type localDisk struct {
	root    string
	baseURL string
}

// NewLocal creates the local driver, making root if needed
func NewLocal(root, baseURL string) (Storage, error) {
	if root == "" {
		root = "./uploads"
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage/local: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir: %w", err)
	}
	return &localDisk{root: abs, baseURL: baseURL}, nil
}

// LocalRoot returns the directory to serve as static files when s is the
// local driver
func LocalRoot(s Storage) (string, bool) {
	d, ok := s.(*localDisk)
	if !ok {
		return "", false
	}
	return d.root, true
}

func (d *localDisk) abs(key string) (string, error) {
	full := filepath.Join(d.root, filepath.FromSlash(key))
	if full != d.root && !strings.HasPrefix(full, d.root+string(filepath.Separator)) {
		return "", fmt.Errorf("storage/local: key %q escapes root", key)
	}
	return full, nil
}

func (d *localDisk) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	full, err := d.abs(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return d.URL(key), nil
}

func (d *localDisk) Delete(ctx context.Context, key string) error {
	full, err := d.abs(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) URL(key string) string {
	return joinURL(d.baseURL, key)
}

func (d *localDisk) Driver() string { return "local" }
