package local_fs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFSSendAndDelete(t *testing.T) {
	dir := t.TempDir()

	client, err := NewClient(&Config{
		IsEnabled:  true,
		SavePath:   dir,
		CustomPath: "snapshots",
	})
	require.NoError(t, err)

	key, err := client.SendContent("2026/export.json", []byte(`{"folders":[]}`), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026/export.json", key)

	data, err := os.ReadFile(filepath.Join(dir, "snapshots", "2026", "export.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"folders":[]}`, string(data))

	key, err = client.SendFile("2026/raw.bin", bytes.NewReader([]byte{0x1, 0x2}), "application/octet-stream", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2026/raw.bin", key)

	require.NoError(t, client.Delete("2026/export.json"))
	_, err = os.Stat(filepath.Join(dir, "snapshots", "2026", "export.json"))
	assert.True(t, os.IsNotExist(err))

	// deleting a missing key is not an error
	require.NoError(t, client.Delete("2026/export.json"))
}
