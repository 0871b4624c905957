package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/dto"
	"github.com/skyring/file-explorer-service/internal/preview"
	"github.com/skyring/file-explorer-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockFolderRepo struct {
	domain.FolderRepository
	folders    map[string]*domain.Folder
	nextID     int
	getErr     error
	listErr    error
	countErr   error
	countCalls int
}

func newMockFolderRepo() *mockFolderRepo {
	return &mockFolderRepo{folders: map[string]*domain.Folder{}}
}

func (m *mockFolderRepo) add(id, parentID, name string) *domain.Folder {
	f := &domain.Folder{ID: id, ParentID: parentID, Name: name}
	m.folders[id] = f
	return f
}

func (m *mockFolderRepo) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.folders[id], nil
}

func (m *mockFolderRepo) ListRoots(ctx context.Context) ([]*domain.Folder, error) {
	return m.ListSubfolders(ctx, domain.RootFolderID)
}

func (m *mockFolderRepo) ListSubfolders(ctx context.Context, parentID string) ([]*domain.Folder, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var res []*domain.Folder
	for _, f := range m.folders {
		if f.ParentID == parentID {
			res = append(res, f)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *mockFolderRepo) CountSubfoldersGroupedByParent(ctx context.Context, parentIDs []string) (map[string]int64, error) {
	m.countCalls++
	if m.countErr != nil {
		return nil, m.countErr
	}
	counts := make(map[string]int64)
	for _, id := range parentIDs {
		for _, f := range m.folders {
			if f.ParentID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (m *mockFolderRepo) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	m.nextID++
	created := *folder
	if created.ID == "" {
		created.ID = string(rune('0'+m.nextID)) + "-gen"
	}
	m.folders[created.ID] = &created
	return &created, nil
}

func (m *mockFolderRepo) Rename(ctx context.Context, id string, name string) error {
	f, ok := m.folders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Name = name
	return nil
}

func (m *mockFolderRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.folders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.folders, id)
	return nil
}

type mockFileRepo struct {
	domain.FileRepository
	files      map[string]*domain.File
	nextID     int
	listErr    error
	countCalls int
}

func newMockFileRepo() *mockFileRepo {
	return &mockFileRepo{files: map[string]*domain.File{}}
}

func (m *mockFileRepo) add(id, folderID, name, mime string, content []byte) *domain.File {
	f := &domain.File{ID: id, FolderID: folderID, Name: name, Mime: mime, Content: content, Size: int64(len(content))}
	m.files[id] = f
	return f
}

func (m *mockFileRepo) GetByID(ctx context.Context, id string) (*domain.File, error) {
	return m.files[id], nil
}

func (m *mockFileRepo) ListByFolder(ctx context.Context, folderID string) ([]*domain.File, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var res []*domain.File
	for _, f := range m.files {
		if f.FolderID == folderID {
			res = append(res, f)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *mockFileRepo) CountFilesGroupedByFolder(ctx context.Context, folderIDs []string) (map[string]int64, error) {
	m.countCalls++
	counts := make(map[string]int64)
	for _, id := range folderIDs {
		for _, f := range m.files {
			if f.FolderID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (m *mockFileRepo) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	m.nextID++
	created := *file
	if created.ID == "" {
		created.ID = string(rune('0'+m.nextID)) + "-file"
	}
	created.Size = int64(len(created.Content))
	m.files[created.ID] = &created
	return &created, nil
}

func (m *mockFileRepo) Rename(ctx context.Context, id string, name string) error {
	f, ok := m.files[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Name = name
	return nil
}

func (m *mockFileRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.files[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.files, id)
	return nil
}

func newFolderService(folders *mockFolderRepo, files *mockFileRepo) FolderService {
	return NewFolderService(folders, files, preview.NewCache(), nil)
}

func dtoFolderCreate(name, parentID string) *dto.FolderCreateRequest {
	return &dto.FolderCreateRequest{Name: name, ParentID: parentID}
}

func TestResolveChildrenEmptyRoot(t *testing.T) {
	svc := newFolderService(newMockFolderRepo(), newMockFileRepo())

	res, err := svc.ResolveChildren(context.Background(), domain.RootFolderID)
	require.NoError(t, err)

	assert.Equal(t, domain.RootFolderID, res.ID)
	assert.Equal(t, domain.RootFolderName, res.Name)
	assert.NotNil(t, res.SubFolders)
	assert.Empty(t, res.SubFolders)
	assert.NotNil(t, res.Files)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasChildren)
}

func TestResolveChildrenHasChildrenFromCounts(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()

	folders.add("a", domain.RootFolderID, "alpha")
	folders.add("b", "a", "bravo")
	folders.add("c", "b", "charlie")
	folders.add("d", "a", "delta")
	files.add("f1", "d", "photo.bin", "application/octet-stream", []byte{1})

	svc := newFolderService(folders, files)
	res, err := svc.ResolveChildren(context.Background(), "a")
	require.NoError(t, err)

	require.Len(t, res.SubFolders, 2)
	byID := map[string]bool{}
	for _, sub := range res.SubFolders {
		byID[sub.ID] = sub.HasChildren
	}
	assert.True(t, byID["b"], "b has a subfolder")
	assert.True(t, byID["d"], "d has a file")

	resB, err := svc.ResolveChildren(context.Background(), "b")
	require.NoError(t, err)
	require.Len(t, resB.SubFolders, 1)
	assert.False(t, resB.SubFolders[0].HasChildren, "c is childless")
}

func TestResolveChildrenBatchesCountQueries(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		folders.add(id, domain.RootFolderID, id)
	}

	svc := newFolderService(folders, files)
	_, err := svc.ResolveChildren(context.Background(), domain.RootFolderID)
	require.NoError(t, err)

	assert.Equal(t, 1, folders.countCalls, "one grouped query for any number of children")
	assert.Equal(t, 1, files.countCalls)
}

func TestResolveChildrenMissingParentIsEmptyNotError(t *testing.T) {
	folders := newMockFolderRepo()
	folders.add("a", domain.RootFolderID, "alpha")

	svc := newFolderService(folders, newMockFileRepo())
	res, err := svc.ResolveChildren(context.Background(), "deleted-id")
	require.NoError(t, err)

	assert.Equal(t, "deleted-id", res.ID)
	assert.Empty(t, res.SubFolders)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasChildren)
}

func TestResolveChildrenStorageFailureFailsWhole(t *testing.T) {
	folders := newMockFolderRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	folders.listErr = errors.New("connection reset")

	svc := newFolderService(folders, newMockFileRepo())
	res, err := svc.ResolveChildren(context.Background(), "a")

	assert.Nil(t, res, "no partial aggregate on failure")
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorFolderListFailed.Code(), c.Code())
}

func TestResolveChildrenAttachesPreviews(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	files.add("f1", "a", "note.txt", "text/plain", []byte("hello"))
	files.add("f2", "a", "data.zip", "application/zip", []byte{0x50, 0x4b})

	cache := preview.NewCache()
	svc := NewFolderService(folders, files, cache, nil)

	res, err := svc.ResolveChildren(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, res.Files, 2)

	assert.Equal(t, preview.KindText, preview.Kind(res.Files[0].PreviewKind))
	assert.Equal(t, "hello", string(res.Files[0].Preview))
	assert.Equal(t, preview.KindNone, preview.Kind(res.Files[1].PreviewKind))
	assert.Nil(t, res.Files[1].Preview)

	// second aggregation reuses memoized artifacts
	_, err = svc.ResolveChildren(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cache.Derivations())
}

func TestResolveDirectSubfoldersSkipsFiles(t *testing.T) {
	folders := newMockFolderRepo()
	files := newMockFileRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	folders.add("b", "a", "bravo")
	files.add("f1", "a", "note.txt", "text/plain", []byte("hello"))

	cache := preview.NewCache()
	svc := NewFolderService(folders, files, cache, nil)

	subs, err := svc.ResolveDirectSubfolders(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "b", subs[0].ID)
	assert.Zero(t, cache.Derivations(), "no preview work on the folder-only path")

	subs, err = svc.ResolveDirectSubfolders(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestFolderCreate(t *testing.T) {
	folders := newMockFolderRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	svc := newFolderService(folders, newMockFileRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, dtoFolderCreate("nested", "a"))
	require.NoError(t, err)
	assert.Equal(t, "a", created.ParentID)
	assert.NotEmpty(t, created.ID)

	_, err = svc.Create(ctx, dtoFolderCreate("orphan", "missing"))
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorFolderNotFound.Code(), c.Code())
}

func TestFolderRenameAndDelete(t *testing.T) {
	folders := newMockFolderRepo()
	folders.add("a", domain.RootFolderID, "alpha")
	svc := newFolderService(folders, newMockFileRepo())
	ctx := context.Background()

	require.NoError(t, svc.Rename(ctx, "a", "omega"))
	assert.Equal(t, "omega", folders.folders["a"].Name)

	assert.ErrorIs(t, svc.Rename(ctx, "missing", "x"), code.ErrorFolderNotFound)

	require.NoError(t, svc.Delete(ctx, "a"))
	assert.ErrorIs(t, svc.Delete(ctx, "a"), code.ErrorFolderNotFound)
}
