package main

import (
	"context"
	"os"

	"github.com/carbonfocus/carbonfocus/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cmd := cli.NewRootCmd(version)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
