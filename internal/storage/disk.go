package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Disk stores files under a local directory. The locator is the path of
// the stored file.
type Disk struct {
	dir string
}

var _ Store = (*Disk)(nil)

// NewDisk creates a disk store rooted at dir. The directory is created
// lazily on first save.
func NewDisk(dir string) *Disk {
	return &Disk{dir: dir}
}

func (d *Disk) Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	path := filepath.Join(d.dir, storedName(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return path, nil
}
