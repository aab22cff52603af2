// Package emptystore provides a store that contains no resources.
//
// It is useful as a placeholder mount while a real backend is offline or
// not yet configured: every resource reports exists=false and every read
// fails not-found, so consumers exercise their missing-content handling
// instead of crashing on a nil store.
package emptystore

import (
	"io"
	"time"

	"github.com/bookward/resources"
)

// Store contains no resources. Always available; safe for concurrent use.
type Store struct {
	name string
}

// New creates an empty store. The identifier defaults to "empty:".
func New(opts ...Option) *Store {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Store{name: options.Name}
}

func (s *Store) String() string { return s.name }

// IsAvailable always reports true; an empty store has nothing to fail.
func (s *Store) IsAvailable() bool { return true }

// Resource returns a handle for the given path. Like every resource of
// this store, it does not exist.
func (s *Store) Resource(path string) (*resources.Resource, error) {
	return resources.New(s, path, &driver{store: s, path: path})
}

type driver struct {
	store *Store
	path  string
}

func (d *driver) FilePreferred() (bool, error) { return false, nil }

func (d *driver) LocalPath() (string, error) { return "", nil }

func (d *driver) Open(r *resources.Resource) (resources.Connection, error) {
	base, err := resources.NewConnBase(r)
	if err != nil {
		return nil, err
	}
	return &conn{ConnBase: base}, nil
}

// conn is a session on a resource that never exists.
type conn struct {
	resources.ConnBase
}

func (c *conn) Exists() (bool, error) {
	if err := c.CheckOpen(); err != nil {
		return false, err
	}
	return false, nil
}

func (c *conn) Length() (int64, error) {
	if err := c.CheckOpen(); err != nil {
		return 0, err
	}
	return 0, &resources.NotFoundError{Name: c.Resource().String()}
}

func (c *conn) ModTime() (time.Time, error) {
	if err := c.CheckOpen(); err != nil {
		return time.Time{}, err
	}
	return time.Time{}, &resources.NotFoundError{Name: c.Resource().String()}
}

func (c *conn) Reader() (io.Reader, error) {
	if err := c.TakeReader(); err != nil {
		return nil, err
	}
	return nil, &resources.NotFoundError{Name: c.Resource().String()}
}

func (c *conn) File() (*resources.File, error) {
	if err := c.TakeFile(); err != nil {
		return nil, err
	}
	return nil, &resources.NotFoundError{Name: c.Resource().String()}
}

func (c *conn) Close() error {
	c.CloseNow()
	return nil
}

// Options configures a Store.
type Options struct {
	Name string
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{Name: "empty:"}
}

// WithName sets the store identifier returned by String.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}
