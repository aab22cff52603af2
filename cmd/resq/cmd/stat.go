package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show resource metadata",
	Long:  "Show existence, length, and last modified time of a resource.",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	res, err := store.Resource(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("resource: %s\n", res)

	exists, err := res.Exists()
	if err != nil {
		return err
	}
	fmt.Printf("exists:   %t\n", exists)
	if !exists {
		return nil
	}

	length, err := res.Length()
	if err != nil {
		return err
	}
	mtime, err := res.ModTime()
	if err != nil {
		return err
	}

	fmt.Printf("length:   %d\n", length)
	fmt.Printf("modified: %s\n", mtime)
	return nil
}
