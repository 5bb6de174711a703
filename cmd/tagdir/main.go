package main

import "github.com/mhoffman/tagdir/cmd/tagdir/cmd"

func main() {
	cmd.Execute()
}
