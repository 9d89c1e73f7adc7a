package main

import (
	"os"

	"github.com/mkarlsen/vttkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
