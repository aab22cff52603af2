package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <path> <dest>",
	Short: "Copy a resource to a local file",
	Long: "Fetch a resource through the hard-requirement local file path " +
		"and copy it to dest. Any temporary materialization is cleaned up.",
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) (err error) {
	store, err := openStore()
	if err != nil {
		return err
	}

	res, err := store.Resource(args[0])
	if err != nil {
		return err
	}

	conn, err := res.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	f, err := conn.File()
	if err != nil {
		return err
	}

	path, ok := f.Path()
	if !ok {
		return errors.New("file handle closed before use")
	}

	if err := copyFile(path, args[1]); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Fetched %s -> %s\n", res, args[1])
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
