package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		f, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("reads stored settings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server_url: https://desk.example.com\nsuggestions_api_key: hf_test\n"), 0600))

		f, err := LoadFile(path)
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, "https://desk.example.com", f.ServerURL)
		assert.Equal(t, "hf_test", f.SuggestAPIKey)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server_url: [unclosed"), 0600))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func TestSaveFile(t *testing.T) {
	t.Run("round-trips through disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		in := &File{ServerURL: "http://localhost:3000", SuggestAPIKey: "hf_abc"}
		require.NoError(t, SaveFile(path, in))

		out, err := LoadFile(path)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, in, out)
	})

	t.Run("replaces an existing file atomically", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, SaveFile(path, &File{ServerURL: "http://one"}))
		require.NoError(t, SaveFile(path, &File{ServerURL: "http://two"}))

		out, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "http://two", out.ServerURL)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	})
}
