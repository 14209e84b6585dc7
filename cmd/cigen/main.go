package main

import (
	"os"

	"cigen/cmd/cigen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
