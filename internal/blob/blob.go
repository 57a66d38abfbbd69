// Package blob stores finished export files on the local filesystem or in
// an S3-compatible bucket.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sink receives one finished export. Put returns where the object landed.
type Sink interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// FS writes objects below Root.
type FS struct {
	Root string
}

func NewFS(root string) (*FS, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FS{Root: root}, nil
}

func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid key traversal")
	}
	return clean, nil
}

func (s *FS) Put(ctx context.Context, key string, r io.Reader, _ string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.Root, k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, ctx.Err()
}
