package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIllegalStateSentinels(t *testing.T) {
	for _, err := range []error{ErrClosed, ErrReaderTaken, ErrFileTaken} {
		require.ErrorIs(t, err, ErrIllegalState)
	}
	require.NotErrorIs(t, ErrClosed, ErrNotFound)
}

func TestNotFoundError_Matching(t *testing.T) {
	err := fmt.Errorf("read: %w", &NotFoundError{Name: "fs:/a/b.txt"})

	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.NotErrorIs(t, err, ErrIllegalState)
	require.Contains(t, err.Error(), "fs:/a/b.txt")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "fs:/a/b.txt", nf.Name)
}

func TestNilArgumentError_Matching(t *testing.T) {
	err := error(&NilArgumentError{Name: "store"})

	require.ErrorIs(t, err, ErrNilArgument)
	require.Contains(t, err.Error(), "store")
}
