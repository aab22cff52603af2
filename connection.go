package resources

import (
	"io"
	"time"
)

// Connection is an open session on one resource. Connections are
// short-lived and single-caller: acquire, use, close. They are not safe
// for concurrent use.
//
// The reader and the file are one-shot and mutually exclusive: at most
// one of the two may be taken, exactly once, while the connection is
// fresh. Metadata calls are allowed any time before Close.
type Connection interface {
	// Resource returns the resource this connection was opened from.
	Resource() *Resource

	// String returns "Connection to " plus the resource's display form.
	String() string

	// Exists checks whether the resource exists.
	// Fails with ErrClosed after Close.
	Exists() (bool, error)

	// Length returns the resource length in bytes, or -1 if unknown.
	// Fails with a not-found error if the resource does not exist, and
	// with ErrClosed after Close.
	Length() (int64, error)

	// ModTime returns the last modified time, or the zero time if
	// unknown. Fails with a not-found error if the resource does not
	// exist, and with ErrClosed after Close.
	ModTime() (time.Time, error)

	// Reader opens the resource for reading. The stream stays valid
	// until Close and may only be taken once per connection; when the
	// content must be read more than once, use File and read the local
	// file directly. Fails with a not-found error if the resource does
	// not exist, and with an illegal-state error when taken twice,
	// after File, or after Close.
	Reader() (io.Reader, error)

	// File returns a local file for the resource. Remote content may be
	// materialized into a temporary file as a side effect; the returned
	// handle owns its cleanup. May only be taken once per connection,
	// and not after Reader. Fails with a not-found error if the
	// resource does not exist, and with an illegal-state error when
	// taken twice, after Reader, or after Close.
	//
	// Use this when a local file is a hard requirement. Use
	// Resource.LocalPath when one is merely an optimization.
	File() (*File, error)

	// Close releases the session: the reader (if taken) is released and
	// any temporary file (if materialized) is deleted, exactly once.
	// Close is idempotent; every Open must be paired with a Close on
	// every exit path.
	Close() error
}

type connState uint8

const (
	stateFresh connState = iota
	stateReaderTaken
	stateFileTaken
	stateClosed
)

// ConnBase carries the resource reference and the session state machine
// shared by Connection implementations. Backends embed it and call the
// guard methods at the top of each operation, so the illegal-state rules
// live in exactly one place.
//
// Like the connections that embed it, ConnBase is not safe for
// concurrent use.
type ConnBase struct {
	res   *Resource
	state connState
}

// NewConnBase returns a ConnBase for the given resource, failing with
// ErrNilArgument when it is absent.
func NewConnBase(res *Resource) (ConnBase, error) {
	if res == nil {
		return ConnBase{}, &NilArgumentError{Name: "resource"}
	}
	return ConnBase{res: res}, nil
}

// Resource returns the resource this connection was opened from.
func (b *ConnBase) Resource() *Resource { return b.res }

func (b *ConnBase) String() string {
	return "Connection to " + b.res.String()
}

// CheckOpen guards metadata operations: it fails with ErrClosed once the
// connection has been closed.
func (b *ConnBase) CheckOpen() error {
	if b.state == stateClosed {
		return ErrClosed
	}
	return nil
}

// TakeReader performs the one-shot fresh → reader-taken transition,
// failing when the connection is closed or either one-shot operation was
// already used.
func (b *ConnBase) TakeReader() error {
	switch b.state {
	case stateClosed:
		return ErrClosed
	case stateReaderTaken:
		return ErrReaderTaken
	case stateFileTaken:
		return ErrFileTaken
	}
	b.state = stateReaderTaken
	return nil
}

// TakeFile performs the one-shot fresh → file-taken transition, failing
// when the connection is closed or either one-shot operation was already
// used.
func (b *ConnBase) TakeFile() error {
	switch b.state {
	case stateClosed:
		return ErrClosed
	case stateFileTaken:
		return ErrFileTaken
	case stateReaderTaken:
		return ErrReaderTaken
	}
	b.state = stateFileTaken
	return nil
}

// CloseNow moves the connection to its terminal state and reports
// whether this call made the transition. Implementations release their
// reader and file only on the first close.
func (b *ConnBase) CloseNow() bool {
	if b.state == stateClosed {
		return false
	}
	b.state = stateClosed
	return true
}
