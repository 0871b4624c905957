package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/preview"
	"github.com/skyring/file-explorer-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartHeaders builds real multipart.FileHeader values the way
// gin would hand them to the service.
func multipartHeaders(t *testing.T, parts map[string]struct {
	mime    string
	content []byte
}) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, part := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
		h.Set("Content-Type", part.mime)
		fw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = fw.Write(part.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["file"]
}

func newFileService(folders *mockFolderRepo, files *mockFileRepo, cache *preview.Cache, upload UploadConfig) FileService {
	return NewFileService(files, folders, cache, nil, upload, nil)
}

func TestUploadStoresAcceptedFiles(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	folders.add("a", domain.RootFolderID, "alpha")

	cache := preview.NewCache()
	svc := newFileService(folders, files, cache, UploadConfig{})

	headers := multipartHeaders(t, map[string]struct {
		mime    string
		content []byte
	}{
		"note.txt": {mime: "text/plain", content: []byte("hello upload")},
	})

	res, err := svc.Upload(context.Background(), "a", headers)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "note.txt", res[0].Name)
	assert.Equal(t, "a", res[0].FolderID)
	assert.Equal(t, int64(len("hello upload")), res[0].Size)

	stored, err := files.GetByID(context.Background(), res[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello upload"), stored.Content)

	// without a pool the preview is derived inline
	artifact, ok := cache.Get(res[0].ID)
	require.True(t, ok)
	assert.Equal(t, preview.KindText, artifact.Kind)
}

func TestUploadSkipsDisallowedFiles(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	folders.add("a", domain.RootFolderID, "alpha")

	svc := newFileService(folders, files, preview.NewCache(), UploadConfig{
		AllowExts: []string{".txt", ".png"},
		MaxSizeMB: 1,
	})

	headers := multipartHeaders(t, map[string]struct {
		mime    string
		content []byte
	}{
		"ok.txt":     {mime: "text/plain", content: []byte("fine")},
		"binary.exe": {mime: "application/octet-stream", content: []byte{1, 2, 3}},
		"huge.txt":   {mime: "text/plain", content: bytes.Repeat([]byte("x"), 2<<20)},
	})

	res, err := svc.Upload(context.Background(), "a", headers)
	require.NoError(t, err)
	require.Len(t, res, 1, "disallowed and oversized files are skipped, not fatal")
	assert.Equal(t, "ok.txt", res[0].Name)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	folders := newMockFolderRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	svc := newFileService(folders, newMockFileRepo(), preview.NewCache(), UploadConfig{MaxFiles: 1})

	headers := multipartHeaders(t, map[string]struct {
		mime    string
		content []byte
	}{
		"one.txt": {mime: "text/plain", content: []byte("1")},
		"two.txt": {mime: "text/plain", content: []byte("2")},
	})

	_, err := svc.Upload(context.Background(), "a", headers)
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorUploadFileFailed.Code(), c.Code())
}

func TestUploadIntoMissingFolder(t *testing.T) {
	svc := newFileService(newMockFolderRepo(), newMockFileRepo(), preview.NewCache(), UploadConfig{})

	headers := multipartHeaders(t, map[string]struct {
		mime    string
		content []byte
	}{
		"note.txt": {mime: "text/plain", content: []byte("x")},
	})

	_, err := svc.Upload(context.Background(), "missing", headers)
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
}

func TestFileGetAndPreview(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	files.add("f1", "a", "note.txt", "text/plain", []byte("content here"))

	cache := preview.NewCache()
	svc := newFileService(folders, files, cache, UploadConfig{})
	ctx := context.Background()

	got, err := svc.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "note.txt", got.Name)
	assert.Equal(t, []byte("content here"), got.Content)
	assert.Equal(t, preview.KindText, preview.Kind(got.PreviewKind))

	p, err := svc.GetPreview(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "content here", string(p.Preview))
	assert.Equal(t, int64(1), cache.Derivations(), "preview memoized across calls")

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, code.ErrorFileNotFound)
	_, err = svc.GetPreview(ctx, "missing")
	assert.ErrorIs(t, err, code.ErrorFileNotFound)
}

func TestFileRenameAndDelete(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	files.add("f1", "a", "note.txt", "text/plain", []byte("x"))

	svc := newFileService(folders, files, preview.NewCache(), UploadConfig{})
	ctx := context.Background()

	require.NoError(t, svc.Rename(ctx, "f1", "renamed.txt"))
	assert.Equal(t, "renamed.txt", files.files["f1"].Name)
	assert.ErrorIs(t, svc.Rename(ctx, "missing", "x"), code.ErrorFileNotFound)

	require.NoError(t, svc.Delete(ctx, "f1"))
	assert.ErrorIs(t, svc.Delete(ctx, "f1"), code.ErrorFileNotFound)
}
