// Package fsstore provides a filesystem-backed resource store.
//
// By default the store reads the operating system filesystem rooted at a
// directory, in which case resources are directly file-addressable and
// the fast local-file path is preferred. Any other afero filesystem can
// be mounted instead (in-memory, zip, read-only overlays); resources are
// then read through connections, and Connection.File materializes
// content into a temporary file when a real file is required.
package fsstore

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/bookward/resources"
)

// Store serves resources from a directory of a filesystem.
// Safe for concurrent use.
type Store struct {
	root     string
	fs       afero.Fs
	name     string
	osBacked bool
}

// New creates a store rooted at the given directory. The directory does
// not need to exist yet; IsAvailable reports whether it currently does.
func New(root string, opts ...Option) (*Store, error) {
	if root == "" {
		return nil, &resources.NilArgumentError{Name: "root"}
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	s := &Store{
		root: filepath.Clean(root),
		fs:   options.Fs,
		name: options.Name,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	_, s.osBacked = s.fs.(*afero.OsFs)
	if s.name == "" {
		s.name = "file:" + filepath.ToSlash(s.root)
	}
	return s, nil
}

// String returns the store identifier set with WithName, or
// "file:<root>" by default.
func (s *Store) String() string { return s.name }

// IsAvailable reports whether the root directory exists.
func (s *Store) IsAvailable() bool {
	info, err := s.fs.Stat(s.root)
	return err == nil && info.IsDir()
}

// Resource returns a handle for the given path. No I/O occurs; the
// resource may or may not exist.
func (s *Store) Resource(p string) (*resources.Resource, error) {
	return resources.New(s, p, &driver{store: s, path: p})
}

// abs resolves a resource path against the store root.
func (s *Store) abs(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path.Clean("/"+p), "/")))
}

type driver struct {
	store *Store
	path  string
}

func (d *driver) FilePreferred() (bool, error) {
	return d.store.osBacked, nil
}

func (d *driver) LocalPath() (string, error) {
	if !d.store.osBacked {
		return "", nil
	}
	return d.store.abs(d.path), nil
}

func (d *driver) Open(r *resources.Resource) (resources.Connection, error) {
	base, err := resources.NewConnBase(r)
	if err != nil {
		return nil, err
	}
	return &conn{ConnBase: base, store: d.store, path: d.store.abs(d.path)}, nil
}

// conn is a session on one file. Not safe for concurrent use.
type conn struct {
	resources.ConnBase

	store  *Store
	path   string
	reader afero.File
	file   *resources.File
}

func (c *conn) Exists() (bool, error) {
	if err := c.CheckOpen(); err != nil {
		return false, err
	}
	_, err := c.store.fs.Stat(c.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (c *conn) Length() (int64, error) {
	info, err := c.stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (c *conn) ModTime() (time.Time, error) {
	info, err := c.stat()
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (c *conn) stat() (os.FileInfo, error) {
	if err := c.CheckOpen(); err != nil {
		return nil, err
	}
	info, err := c.store.fs.Stat(c.path)
	if os.IsNotExist(err) {
		return nil, &resources.NotFoundError{Name: c.Resource().String()}
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (c *conn) Reader() (io.Reader, error) {
	if err := c.TakeReader(); err != nil {
		return nil, err
	}
	f, err := c.store.fs.Open(c.path)
	if os.IsNotExist(err) {
		return nil, &resources.NotFoundError{Name: c.Resource().String()}
	}
	if err != nil {
		return nil, err
	}
	c.reader = f
	return f, nil
}

func (c *conn) File() (*resources.File, error) {
	if err := c.TakeFile(); err != nil {
		return nil, err
	}

	if c.store.osBacked {
		// Already a real file; the handle has nothing to clean up.
		if _, err := c.store.fs.Stat(c.path); err != nil {
			if os.IsNotExist(err) {
				return nil, &resources.NotFoundError{Name: c.Resource().String()}
			}
			return nil, err
		}
		f, err := resources.NewFile(c.path)
		if err != nil {
			return nil, err
		}
		c.file = f
		return f, nil
	}

	tmp, err := c.materialize()
	if err != nil {
		return nil, err
	}
	f, err := resources.NewTempFile(tmp)
	if err != nil {
		os.Remove(tmp)
		return nil, err
	}
	c.file = f
	return f, nil
}

// materialize copies the content into a temporary file on the OS
// filesystem and returns its path.
func (c *conn) materialize() (tmpPath string, err error) {
	src, err := c.store.fs.Open(c.path)
	if os.IsNotExist(err) {
		return "", &resources.NotFoundError{Name: c.Resource().String()}
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "fsstore-*")
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}
	defer func() {
		if cerr := tmp.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", fmt.Errorf("materialize %s: %w", c.Resource(), err)
	}
	return tmp.Name(), nil
}

func (c *conn) Close() error {
	if !c.CloseNow() {
		return nil
	}
	var firstErr error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			firstErr = err
		}
		c.reader = nil
	}
	if c.file != nil {
		if err := c.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.file = nil
	}
	return firstErr
}
