package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print resource content",
	Long:  "Stream the content of a resource to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) (err error) {
	store, err := openStore()
	if err != nil {
		return err
	}

	res, err := store.Resource(args[0])
	if err != nil {
		return err
	}

	rc, err := res.Reader()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(os.Stdout, rc)
	return err
}
