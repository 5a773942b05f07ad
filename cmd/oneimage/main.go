package main

import (
	"os"

	"github.com/oneimage/oneimage/internal/cli"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
