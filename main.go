package main

import (
	"os"

	"github.com/palabreo/palabreo/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
