package resources

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// File is a closeable handle to a local file holding a resource's
// content. When the content had to be materialized into a temporary
// file, the handle owns that file and deletes it on Close; content that
// was already local is left untouched.
//
// Not safe for concurrent use.
type File struct {
	path   string
	temp   bool
	closed bool
}

// NewFile wraps an existing local file. Close releases the handle but
// leaves the file in place.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, &NilArgumentError{Name: "path"}
	}
	return &File{path: path}, nil
}

// NewTempFile wraps a temporary materialization of remote content.
// Close deletes the file.
func NewTempFile(path string) (*File, error) {
	if path == "" {
		return nil, &NilArgumentError{Name: "path"}
	}
	return &File{path: path, temp: true}, nil
}

// Path returns the local file path, or ("", false) once the handle has
// been closed. The path is never returned stale: after Close it is
// forgotten even if deletion failed.
func (f *File) Path() (string, bool) {
	if f.closed {
		return "", false
	}
	return f.path, true
}

// Close releases the handle, deleting the backing file if it was a
// temporary materialization. Close is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if !f.temp {
		return nil
	}
	Logger().Debug("removing temporary file", zap.String("path", f.path))
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temporary file: %w", err)
	}
	return nil
}
