package main

import (
	"os"

	"github.com/rickgorman/devservices/internal/cli"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit)
	os.Exit(cli.Execute())
}
