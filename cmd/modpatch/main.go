// Command modpatch applies compatibility fixes to build modules.
package main

import (
	"os"

	"github.com/custodia-labs/modpatch/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
