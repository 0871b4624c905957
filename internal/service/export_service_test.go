package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/skyring/file-explorer-service/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureStorage struct {
	keys     []string
	payloads [][]byte
}

func (c *captureStorage) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return c.SendContent(fileKey, content, modTime)
}

func (c *captureStorage) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	c.keys = append(c.keys, fileKey)
	c.payloads = append(c.payloads, content)
	return fileKey, nil
}

func (c *captureStorage) Delete(fileKey string) error { return nil }

func TestExportSnapshot(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()

	folders.add("a", domain.RootFolderID, "alpha")
	folders.add("b", "a", "bravo")
	files.add("f1", "b", "deep.txt", "text/plain", []byte("deep"))
	files.add("r1", domain.RootFolderID, "top.txt", "text/plain", []byte("top"))

	store := &captureStorage{}
	svc := NewExportService(folders, files, store, nil)

	key, err := svc.ExportSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.Equal(t, key, store.keys[0])
	assert.Contains(t, key, "tree-")

	var doc ExportSnapshotDoc
	require.NoError(t, sonic.Unmarshal(store.payloads[0], &doc))

	assert.Equal(t, 2, doc.FolderCount)
	assert.Equal(t, 2, doc.FileCount)
	require.Len(t, doc.Roots, 1)
	assert.Equal(t, "alpha", doc.Roots[0].Name)
	require.Len(t, doc.Roots[0].SubFolders, 1)
	require.Len(t, doc.Roots[0].SubFolders[0].Files, 1)
	assert.Equal(t, "deep.txt", doc.Roots[0].SubFolders[0].Files[0].Name)
	require.Len(t, doc.RootFiles, 1)
	assert.Equal(t, "top.txt", doc.RootFiles[0].Name)
}
