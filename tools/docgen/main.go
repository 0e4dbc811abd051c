// Package main writes the markdown reference for both command trees: the
// infiniti-drive server binary and the idctl API client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	idctl "github.com/infinitidrive/infiniti-drive/cmd/idctl/cmd"
	server "github.com/infinitidrive/infiniti-drive/cmd/infiniti-drive/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	dirs, err := generate(*output, server.Root(), idctl.Root())
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range dirs {
		fmt.Printf("CLI docs generated in %s/\n", d)
	}
}

// generate writes each command tree into its own subdirectory of out, named
// after the root command, and returns the directories written.
func generate(out string, roots ...*cobra.Command) ([]string, error) {
	dirs := make([]string, 0, len(roots))
	for _, root := range roots {
		dir := filepath.Join(out, root.Name())
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}

		root.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(root, dir); err != nil {
			return nil, fmt.Errorf("generating %s docs: %w", root.Name(), err)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}
