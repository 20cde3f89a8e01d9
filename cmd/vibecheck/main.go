// Package main provides the vibecheck command.
package main

import (
	"os"

	"github.com/WolffM/vibecheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
