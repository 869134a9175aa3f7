package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalDir stores blob bytes as flat files under a root directory, keyed by
// the generated storage key. Intended for development and tests; production
// deployments use the S3 backend.
type LocalDir struct {
	root string
}

// NewLocalDir creates a local blob store rooted at root.
func NewLocalDir(root string) (*LocalDir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local blob root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalDir{root: abs}, nil
}

// EnsureBucket re-creates the root directory if it went missing.
func (d *LocalDir) EnsureBucket(ctx context.Context) error {
	if d == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(d.root, 0o755)
}

// Put streams bytes into a temp file and renames it into place.
func (d *LocalDir) Put(ctx context.Context, key, _ string, r io.Reader) error {
	if d == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := d.pathFromKey(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Join(d.root, "tmp"), "put-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Open returns a reader for the object stored under key.
func (d *LocalDir) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if d == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.pathFromKey(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return f, nil
}

func (d *LocalDir) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}
	// Keys are single path elements (uuid + extension); anything else is
	// rejected to keep traversal out of the root.
	if key != filepath.Base(key) || key == "." || key == ".." || key == "tmp" {
		return "", fmt.Errorf("invalid blob key")
	}
	return filepath.Join(d.root, key), nil
}

var _ BlobStore = (*LocalDir)(nil)
