// Package storage persists uploaded document files and returns a
// locator for later retrieval. Callers validate size and file type
// before handing bytes over; implementations only move them.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes a file and returns its locator.
type Store interface {
	Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error)
}

// ErrUpload reports a failed write to the backing store.
var ErrUpload = errors.New("storage: upload failed")

// storedName derives a collision-free object name, keeping the original
// extension so the file stays openable after download.
func storedName(filename string) string {
	name := uuid.NewString()
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		name += ext
	}
	return name
}
