package resources

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Resource is a handle to one addressable item, identified by its store
// and path. Resources are immutable, hold no open handles, and are safe
// to share across concurrent callers; Connections are not.
type Resource struct {
	store Store
	path  string
	drv   Driver
}

// New constructs a Resource. Backends call this from Store.Resource.
// All three collaborators are required; a missing one fails with
// ErrNilArgument before any field is set.
func New(store Store, path string, drv Driver) (*Resource, error) {
	if store == nil {
		return nil, &NilArgumentError{Name: "store"}
	}
	if path == "" {
		return nil, &NilArgumentError{Name: "path"}
	}
	if drv == nil {
		return nil, &NilArgumentError{Name: "driver"}
	}
	return &Resource{store: store, path: path, drv: drv}, nil
}

// Store returns the store that provides this resource.
func (r *Resource) Store() Store { return r.store }

// Path returns the path that refers to this resource.
func (r *Resource) Path() string { return r.path }

// String joins the store identifier and the path. A store identifier
// ending in ":" concatenates directly; any other identifier joins with
// "!".
func (r *Resource) String() string {
	s := r.store.String()
	if strings.HasSuffix(s, ":") {
		return s + r.path
	}
	return s + "!" + r.path
}

// Equal reports whether o refers to the same store and path. Two equal
// resources are interchangeable, regardless of which backend value
// produced them.
func (r *Resource) Equal(o *Resource) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	return r.store == o.store && r.path == o.path
}

// Key identifies a resource by its store and path. Equal resources have
// equal keys, so a Key is usable as a map key when callers cache by
// resource.
type Key struct {
	Store Store
	Path  string
}

// Key returns the identity of this resource.
func (r *Resource) Key() Key {
	return Key{Store: r.store, Path: r.path}
}

// FilePreferred hints whether direct local-file access will outperform a
// connection-based read for this resource right now. Performance-
// sensitive callers combine it with LocalPath to bypass connections.
func (r *Resource) FilePreferred() (bool, error) {
	return r.drv.FilePreferred()
}

// LocalPath returns a direct local filesystem path for this resource
// when the content is already locally addressable, or "" otherwise.
// The file may or may not exist.
//
// Use this when a local file is a convenience or optimization. Use
// Connection.File when one is a hard requirement.
func (r *Resource) LocalPath() (string, error) {
	return r.drv.LocalPath()
}

// Open begins a new session on this resource. The caller owns the
// returned connection and must close it on every exit path.
func (r *Resource) Open() (Connection, error) {
	return r.drv.Open(r)
}

// preferredPath returns a local path to read directly, or "" when the
// connection path should be used instead.
func (r *Resource) preferredPath() (string, error) {
	pref, err := r.drv.FilePreferred()
	if err != nil {
		return "", err
	}
	if !pref {
		return "", nil
	}
	return r.drv.LocalPath()
}

// Exists checks whether this resource exists.
//
// This opens and closes a connection for non-local resources. Use Open
// when several consecutive operations are needed.
func (r *Resource) Exists() (ok bool, err error) {
	path, err := r.preferredPath()
	if err != nil {
		return false, err
	}
	if path != "" {
		_, err := os.Stat(path)
		if err == nil {
			return true, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	conn, err := r.Open()
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return conn.Exists()
}

// Length returns the length of this resource in bytes, or -1 if unknown.
// It fails with a not-found error if the resource does not exist.
//
// This opens and closes a connection for non-local resources. Use Open
// when several consecutive operations are needed.
func (r *Resource) Length() (n int64, err error) {
	path, err := r.preferredPath()
	if err != nil {
		return 0, err
	}
	if path != "" {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return 0, &NotFoundError{Name: r.String()}
		}
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}
	conn, err := r.Open()
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return conn.Length()
}

// ModTime returns the last modified time of this resource, or the zero
// time if unknown. It fails with a not-found error if the resource does
// not exist.
//
// This opens and closes a connection for non-local resources. Use Open
// when several consecutive operations are needed.
func (r *Resource) ModTime() (mtime time.Time, err error) {
	path, err := r.preferredPath()
	if err != nil {
		return time.Time{}, err
	}
	if path != "" {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return time.Time{}, &NotFoundError{Name: r.String()}
		}
		if err != nil {
			return time.Time{}, err
		}
		return info.ModTime(), nil
	}
	conn, err := r.Open()
	if err != nil {
		return time.Time{}, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return conn.ModTime()
}

// Reader opens this resource for reading. It fails with a not-found
// error if the resource does not exist.
//
// For preferred local resources the returned reader is the file itself.
// Otherwise a connection is opened under the covers and closing the
// returned reader also closes that connection.
func (r *Resource) Reader() (io.ReadCloser, error) {
	path, err := r.preferredPath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: r.String()}
		}
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	Logger().Debug("reading through connection", zap.String("resource", r.String()))
	conn, err := r.Open()
	if err != nil {
		return nil, err
	}
	rd, err := conn.Reader()
	if err != nil {
		// Best effort: release the connection, keep the original error.
		_ = conn.Close()
		return nil, err
	}
	return &connReader{r: rd, conn: conn}, nil
}

// connReader ties the lifetime of a connection to the stream handed out
// by Resource.Reader.
type connReader struct {
	r    io.Reader
	conn Connection
}

func (cr *connReader) Read(p []byte) (int, error) {
	return cr.r.Read(p)
}

func (cr *connReader) Close() error {
	return cr.conn.Close()
}
