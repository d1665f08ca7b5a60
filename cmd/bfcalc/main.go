// Package main provides the bfcalc command.
package main

import (
	"os"

	"github.com/leapstack-labs/bfcalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
