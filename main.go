package main

import (
	"os"

	"github.com/nazolab/mogi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
