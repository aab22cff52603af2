// Package resources provides a small abstraction for locating and reading
// named resources from pluggable backing stores.
//
// A Store maps hierarchical paths to Resource handles. Resources are
// long-lived, cheap to create, and safe to share; they carry no open
// handles. Reading happens either through convenience methods on the
// Resource, or through an explicitly opened Connection when several
// consecutive operations are needed.
//
// Basic usage:
//
//	store, _ := fsstore.New("/var/content")
//
//	res, _ := store.Resource("/a/b.txt")
//
//	// One-shot operations open and close a connection internally.
//	ok, _ := res.Exists()
//	n, _ := res.Length()
//
//	// Stream the content. Closing the reader releases everything
//	// it opened under the covers.
//	rc, _ := res.Reader()
//	defer rc.Close()
//	io.Copy(os.Stdout, rc)
//
// Consecutive operations on the same resource should share one connection:
//
//	conn, _ := res.Open()
//	defer conn.Close()
//
//	ok, _ := conn.Exists()
//	n, _ := conn.Length()
//	r, _ := conn.Reader()
//
// When a real file on the local filesystem is a hard requirement (not just
// an optimization), ask the connection for one. Remote content is
// materialized into a temporary file that is cleaned up on close:
//
//	conn, _ := res.Open()
//	defer conn.Close()
//
//	f, _ := conn.File()
//	defer f.Close()
//	path, _ := f.Path()
//
// Stores and Resources are safe for concurrent use. Connections and Files
// are not; confine them to a single caller.
package resources
