// Package main is the entry point for the supportcrawl CLI.
package main

import (
	"os"

	"github.com/supportcrawl/supportcrawl/cmd/supportcrawl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
