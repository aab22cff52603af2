package resources

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeStore is a minimal store for contract tests.
type fakeStore struct {
	name      string
	available bool
}

func (s *fakeStore) String() string    { return s.name }
func (s *fakeStore) IsAvailable() bool { return s.available }

func (s *fakeStore) Resource(path string) (*Resource, error) {
	return New(s, path, &fakeDriver{})
}

// fakeDriver scripts the three primitives and records every connection
// it hands out.
type fakeDriver struct {
	preferred bool
	localPath string
	prefErr   error
	openErr   error

	exists  bool
	length  int64
	mtime   time.Time
	content []byte

	opened []*fakeConn
}

func (d *fakeDriver) FilePreferred() (bool, error) { return d.preferred, d.prefErr }
func (d *fakeDriver) LocalPath() (string, error)   { return d.localPath, nil }

func (d *fakeDriver) Open(r *Resource) (Connection, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	base, err := NewConnBase(r)
	if err != nil {
		return nil, err
	}
	c := &fakeConn{ConnBase: base, drv: d}
	d.opened = append(d.opened, c)
	return c, nil
}

// fakeConn serves the scripted driver data and counts effective closes.
type fakeConn struct {
	ConnBase

	drv    *fakeDriver
	closes int
}

func (c *fakeConn) Exists() (bool, error) {
	if err := c.CheckOpen(); err != nil {
		return false, err
	}
	return c.drv.exists, nil
}

func (c *fakeConn) Length() (int64, error) {
	if err := c.CheckOpen(); err != nil {
		return 0, err
	}
	if !c.drv.exists {
		return 0, &NotFoundError{Name: c.Resource().String()}
	}
	return c.drv.length, nil
}

func (c *fakeConn) ModTime() (time.Time, error) {
	if err := c.CheckOpen(); err != nil {
		return time.Time{}, err
	}
	if !c.drv.exists {
		return time.Time{}, &NotFoundError{Name: c.Resource().String()}
	}
	return c.drv.mtime, nil
}

func (c *fakeConn) Reader() (io.Reader, error) {
	if err := c.TakeReader(); err != nil {
		return nil, err
	}
	if !c.drv.exists {
		return nil, &NotFoundError{Name: c.Resource().String()}
	}
	return bytes.NewReader(c.drv.content), nil
}

func (c *fakeConn) File() (*File, error) {
	if err := c.TakeFile(); err != nil {
		return nil, err
	}
	if !c.drv.exists {
		return nil, &NotFoundError{Name: c.Resource().String()}
	}
	tmp, err := os.CreateTemp("", "fake-*")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.Write(c.drv.content); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	return NewTempFile(tmp.Name())
}

func (c *fakeConn) Close() error {
	if !c.CloseNow() {
		return nil
	}
	c.closes++
	return nil
}

func newFakeResource(t *testing.T, storeName, path string, drv *fakeDriver) *Resource {
	t.Helper()
	r, err := New(&fakeStore{name: storeName, available: true}, path, drv)
	require.NoError(t, err)
	return r
}

func TestNew_MissingCollaborators(t *testing.T) {
	store := &fakeStore{name: "fs:"}
	drv := &fakeDriver{}

	_, err := New(nil, "/a", drv)
	require.ErrorIs(t, err, ErrNilArgument)

	_, err = New(store, "", drv)
	require.ErrorIs(t, err, ErrNilArgument)

	_, err = New(store, "/a", nil)
	require.ErrorIs(t, err, ErrNilArgument)
}

func TestResource_Equality(t *testing.T) {
	s1 := &fakeStore{name: "fs:"}
	s2 := &fakeStore{name: "fs:"}

	a1, err := New(s1, "/a/b.txt", &fakeDriver{})
	require.NoError(t, err)
	a2, err := New(s1, "/a/b.txt", &fakeDriver{})
	require.NoError(t, err)
	b, err := New(s1, "/a/c.txt", &fakeDriver{})
	require.NoError(t, err)
	other, err := New(s2, "/a/b.txt", &fakeDriver{})
	require.NoError(t, err)

	require.True(t, a1.Equal(a1))
	require.True(t, a1.Equal(a2), "same store and path must be interchangeable")
	require.False(t, a1.Equal(b), "different path")
	require.False(t, a1.Equal(other), "resources from different stores are never equal")
	require.False(t, a1.Equal(nil))

	// Keys agree exactly when resources are equal.
	require.Equal(t, a1.Key(), a2.Key())
	require.NotEqual(t, a1.Key(), b.Key())
	require.NotEqual(t, a1.Key(), other.Key())

	seen := map[Key]int{a1.Key(): 1}
	require.Equal(t, 1, seen[a2.Key()])
}

func TestResource_String(t *testing.T) {
	uri := newFakeResource(t, "fs:", "/a/b.txt", &fakeDriver{})
	require.Equal(t, "fs:/a/b.txt", uri.String())

	archive := newFakeResource(t, "book", "/a/b.txt", &fakeDriver{})
	require.Equal(t, "book!/a/b.txt", archive.String())
}

func TestResource_ConnectionBackedMetadata(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	drv := &fakeDriver{exists: true, length: 42, mtime: mtime}
	res := newFakeResource(t, "fs:", "/a/b.txt", drv)

	ok, err := res.Exists()
	require.NoError(t, err)
	require.True(t, ok)

	n, err := res.Length()
	require.NoError(t, err)
	require.Equal(t, int64(42), n)

	got, err := res.ModTime()
	require.NoError(t, err)
	require.True(t, got.Equal(mtime))

	// Each one-shot operation opened and closed its own connection.
	require.Len(t, drv.opened, 3)
	for _, c := range drv.opened {
		require.Equal(t, 1, c.closes)
	}

	// Idempotence on an unmodified resource.
	for i := 0; i < 3; i++ {
		ok, err := res.Exists()
		require.NoError(t, err)
		require.True(t, ok)

		n, err := res.Length()
		require.NoError(t, err)
		require.Equal(t, int64(42), n)
	}
}

func TestResource_NotFound(t *testing.T) {
	drv := &fakeDriver{exists: false}
	res := newFakeResource(t, "fs:", "/missing.txt", drv)

	ok, err := res.Exists()
	require.NoError(t, err)
	require.False(t, ok)

	_, err = res.Length()
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = res.ModTime()
	require.ErrorIs(t, err, ErrNotFound)

	_, err = res.Reader()
	require.ErrorIs(t, err, ErrNotFound)

	// Every connection was still closed, including on the error paths.
	require.NotEmpty(t, drv.opened)
	for _, c := range drv.opened {
		require.Equal(t, 1, c.closes)
	}
}

func TestResource_ReaderClosesConnection(t *testing.T) {
	drv := &fakeDriver{exists: true, content: []byte("hello world"), length: 11}
	res := newFakeResource(t, "fs:", "/a/b.txt", drv)

	rc, err := res.Reader()
	require.NoError(t, err)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), data)

	require.Len(t, drv.opened, 1)
	require.Equal(t, 0, drv.opened[0].closes, "connection must stay open until the stream is closed")

	require.NoError(t, rc.Close())
	require.Equal(t, 1, drv.opened[0].closes, "closing the stream must close the connection")
}

func TestResource_OpenFailurePropagates(t *testing.T) {
	boom := errors.New("mount gone")
	drv := &fakeDriver{openErr: boom}
	res := newFakeResource(t, "fs:", "/a/b.txt", drv)

	_, err := res.Exists()
	require.ErrorIs(t, err, boom)

	_, err = res.Reader()
	require.ErrorIs(t, err, boom)
}

func TestResource_PreferenceCheckFailurePropagates(t *testing.T) {
	boom := errors.New("stat storm")
	drv := &fakeDriver{prefErr: boom}
	res := newFakeResource(t, "fs:", "/a/b.txt", drv)

	_, err := res.Exists()
	require.ErrorIs(t, err, boom)
	require.Empty(t, drv.opened)
}

func TestResource_PreferredFileBypassesConnections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.txt")
	content := []byte("forty-two bytes of perfectly ordinary text")
	require.NoError(t, os.WriteFile(path, content, 0644))

	drv := &fakeDriver{preferred: true, localPath: path}
	res := newFakeResource(t, "fs:", "/a/b.txt", drv)

	ok, err := res.Exists()
	require.NoError(t, err)
	require.True(t, ok)

	n, err := res.Length()
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), n)

	rc, err := res.Reader()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, content, data, "direct file stream must match the file byte for byte")

	require.Empty(t, drv.opened, "preferred local file must not open connections")
}

func TestResource_PreferredFileMissing(t *testing.T) {
	dir := t.TempDir()
	drv := &fakeDriver{preferred: true, localPath: filepath.Join(dir, "missing.txt")}
	res := newFakeResource(t, "fs:", "/missing.txt", drv)

	ok, err := res.Exists()
	require.NoError(t, err)
	require.False(t, ok)

	_, err = res.Length()
	require.ErrorIs(t, err, ErrNotFound)

	_, err = res.Reader()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResource_PreferredWithoutLocalPathFallsBack(t *testing.T) {
	// FilePreferred true but no local path available: the connection
	// path must be used.
	drv := &fakeDriver{preferred: true, exists: true, length: 7}
	res := newFakeResource(t, "fs:", "/a/b.txt", drv)

	n, err := res.Length()
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Len(t, drv.opened, 1)
}
