// Package main is the entry point for the idctl CLI client.
package main

import (
	"github.com/infinitidrive/infiniti-drive/cmd/idctl/cmd"
)

func main() {
	cmd.Execute()
}
