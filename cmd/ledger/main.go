// Package main provides the ledger CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/footballbetting/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
