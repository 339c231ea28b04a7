package main

import (
	"os"

	"github.com/raider-tools/arcsafe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
