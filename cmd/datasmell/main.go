// Package main is the entry point of the datasmell CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/datasmell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
