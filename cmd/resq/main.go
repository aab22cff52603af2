package main

import "github.com/bookward/resources/cmd/resq/cmd"

func main() {
	cmd.Execute()
}
