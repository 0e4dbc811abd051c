package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idctl "github.com/infinitidrive/infiniti-drive/cmd/idctl/cmd"
	server "github.com/infinitidrive/infiniti-drive/cmd/infiniti-drive/cmd"
)

func TestGenerate(t *testing.T) {
	out := t.TempDir()

	dirs, err := generate(out, server.Root(), idctl.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "infiniti-drive"),
		filepath.Join(out, "idctl"),
	}, dirs)

	for _, file := range []string{
		"infiniti-drive/infiniti-drive_serve.md",
		"infiniti-drive/infiniti-drive_query.md",
		"infiniti-drive/infiniti-drive_openapi.md",
		"idctl/idctl_listings_list.md",
		"idctl/idctl_enquire.md",
		"idctl/idctl_contact.md",
	} {
		assert.FileExists(t, filepath.Join(out, file))
	}

	serve, err := os.ReadFile(filepath.Join(out, "infiniti-drive", "infiniti-drive_serve.md"))
	require.NoError(t, err)
	assert.Contains(t, string(serve), "--config")
	assert.NotContains(t, string(serve), "Auto generated by spf13/cobra")
}
