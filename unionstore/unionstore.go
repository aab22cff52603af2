// Package unionstore overlays an ordered list of stores behind a single
// store identity.
//
// A resource resolves to the first member store where it exists, so
// earlier members shadow later ones. A path that exists nowhere behaves
// like a missing resource of the first member. Availability means any
// member is available; members are probed concurrently since some may be
// slow remote mounts.
package unionstore

import (
	"io"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/bookward/resources"
)

// Store is an ordered overlay of member stores.
// Safe for concurrent use.
type Store struct {
	name    string
	members []resources.Store
}

// New creates a union over the given stores, in shadowing order.
// At least one member is required.
func New(members []resources.Store, opts ...Option) (*Store, error) {
	if len(members) == 0 {
		return nil, &resources.NilArgumentError{Name: "members"}
	}
	for _, m := range members {
		if m == nil {
			return nil, &resources.NilArgumentError{Name: "members"}
		}
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	s := &Store{name: options.Name, members: make([]resources.Store, len(members))}
	copy(s.members, members)
	return s, nil
}

func (s *Store) String() string { return s.name }

// IsAvailable reports whether any member store is available. Members are
// probed in parallel so one slow mount does not serialize the rest.
func (s *Store) IsAvailable() bool {
	p := pool.NewWithResults[bool]()
	for _, m := range s.members {
		p.Go(m.IsAvailable)
	}
	for _, ok := range p.Wait() {
		if ok {
			return true
		}
	}
	return false
}

// Resource returns a handle for the given path. Resolution against the
// members happens lazily, on first I/O.
func (s *Store) Resource(path string) (*resources.Resource, error) {
	return resources.New(s, path, &driver{store: s, path: path})
}

type driver struct {
	store *Store
	path  string
}

// resolve returns the member resource backing this path: the first one
// that exists, or the first member's resource when none does.
func (d *driver) resolve() (*resources.Resource, error) {
	for _, m := range d.store.members {
		r, err := m.Resource(d.path)
		if err != nil {
			return nil, err
		}
		ok, err := r.Exists()
		if err != nil {
			return nil, err
		}
		if ok {
			return r, nil
		}
	}
	return d.store.members[0].Resource(d.path)
}

func (d *driver) FilePreferred() (bool, error) {
	r, err := d.resolve()
	if err != nil {
		return false, err
	}
	return r.FilePreferred()
}

func (d *driver) LocalPath() (string, error) {
	r, err := d.resolve()
	if err != nil {
		return "", err
	}
	return r.LocalPath()
}

func (d *driver) Open(r *resources.Resource) (resources.Connection, error) {
	base, err := resources.NewConnBase(r)
	if err != nil {
		return nil, err
	}
	target, err := d.resolve()
	if err != nil {
		return nil, err
	}
	inner, err := target.Open()
	if err != nil {
		return nil, err
	}
	return &conn{ConnBase: base, inner: inner}, nil
}

// conn delegates to a session on the resolved member resource while
// keeping the union resource as its identity.
type conn struct {
	resources.ConnBase

	inner resources.Connection
}

func (c *conn) Exists() (bool, error) {
	if err := c.CheckOpen(); err != nil {
		return false, err
	}
	return c.inner.Exists()
}

func (c *conn) Length() (int64, error) {
	if err := c.CheckOpen(); err != nil {
		return 0, err
	}
	return c.inner.Length()
}

func (c *conn) ModTime() (time.Time, error) {
	if err := c.CheckOpen(); err != nil {
		return time.Time{}, err
	}
	return c.inner.ModTime()
}

func (c *conn) Reader() (io.Reader, error) {
	if err := c.TakeReader(); err != nil {
		return nil, err
	}
	return c.inner.Reader()
}

func (c *conn) File() (*resources.File, error) {
	if err := c.TakeFile(); err != nil {
		return nil, err
	}
	return c.inner.File()
}

func (c *conn) Close() error {
	if !c.CloseNow() {
		return nil
	}
	return c.inner.Close()
}

// Options configures a Store.
type Options struct {
	Name string
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{Name: "union:"}
}

// WithName sets the store identifier returned by String.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}
