package resources

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is matched by errors returned when a resource does not
	// exist. Errors of this kind also match fs.ErrNotExist.
	ErrNotFound = errors.New("resources: not found")

	// ErrIllegalState is the umbrella for contract violations on a
	// connection: operations after close, or a second one-shot access.
	// These indicate a caller bug, not an environmental failure.
	ErrIllegalState = errors.New("resources: illegal state")

	// ErrNilArgument is matched by errors returned when a required
	// collaborator is missing at construction time.
	ErrNilArgument = errors.New("resources: nil argument")
)

var (
	// ErrClosed is returned by any operation on a closed connection.
	ErrClosed = fmt.Errorf("%w: connection closed", ErrIllegalState)

	// ErrReaderTaken is returned when the connection's reader was
	// already taken.
	ErrReaderTaken = fmt.Errorf("%w: reader already taken", ErrIllegalState)

	// ErrFileTaken is returned when the connection's file was
	// already taken.
	ErrFileTaken = fmt.Errorf("%w: file already taken", ErrIllegalState)
)

// NotFoundError reports that a resource does not exist. It matches both
// ErrNotFound and fs.ErrNotExist so callers can distinguish "missing"
// from "broken" with either sentinel.
type NotFoundError struct {
	Name string // display form of the resource
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resources: %s does not exist", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == fs.ErrNotExist
}

// NilArgumentError reports a missing collaborator at construction time.
type NilArgumentError struct {
	Name string // parameter name
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("resources: nil argument: %s", e.Name)
}

func (e *NilArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}
