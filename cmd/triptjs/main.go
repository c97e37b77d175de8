// Package main provides the CLI for the triptjs compiler.
package main

import (
	"os"

	"github.com/leapstack-labs/triptjs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
