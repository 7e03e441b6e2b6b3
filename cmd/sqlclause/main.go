// Package main provides the sqlclause CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlclause/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
