// Package main is the entry point for the infiniti-drive server.
package main

import (
	"os"

	"github.com/infinitidrive/infiniti-drive/cmd/infiniti-drive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
