// Package main is the entry point for the marksort CLI.
package main

import (
	"os"

	"github.com/f3rmion/marksort/cmd/marksort/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
