// Package main provides the entry point for the clipvault CLI tool.
package main

import (
	"github.com/clipvault/clipvault/cmd/clipvault/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
