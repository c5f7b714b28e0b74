package main

import (
	"os"

	"github.com/boga881/drupalextension/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
