package resources

// Store maps hierarchical paths to Resource handles within one logical
// collection of content. Stores are long-lived and safe for concurrent
// use; implementations must not expose mutable state.
type Store interface {
	// String returns a stable, human-readable identifier for the store.
	// Resource display strings derive from it: an identifier ending in
	// ":" joins the path directly (URI style), anything else joins with
	// "!" (archive style).
	String() string

	// IsAvailable reports whether the backing store can currently
	// service requests. It never fails; callers are expected to degrade
	// gracefully when a store is unavailable rather than treat it as
	// fatal.
	IsAvailable() bool

	// Resource returns a handle for the given path. This is pure
	// construction: no I/O occurs, and the resource may or may not
	// Exist. It fails only for arguments the backend cannot represent,
	// such as an empty path.
	Resource(path string) (*Resource, error)
}

// Driver supplies the backend primitives behind a Resource. Everything
// else on Resource derives from these three calls.
type Driver interface {
	// FilePreferred hints whether direct local-file access will
	// outperform a connection-based read for this resource right now.
	FilePreferred() (bool, error)

	// LocalPath returns the local filesystem path of the content when
	// it is already locally addressable, or "" otherwise. The file may
	// or may not exist; existence is a separate check.
	LocalPath() (string, error)

	// Open begins a new session on r, which is the resource this driver
	// was installed on. The caller owns the returned connection and
	// must close it.
	Open(r *Resource) (Connection, error)
}
