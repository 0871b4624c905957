package treecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folder(id, parentID, name string, hasChildren bool) *FolderNode {
	return &FolderNode{ID: id, ParentID: parentID, Name: name, HasChildren: hasChildren}
}

func file(id, folderID, name string) *FileNode {
	return &FileNode{ID: id, FolderID: folderID, Name: name}
}

// a <- b <- c, with a file under b. b and c child lists loaded, a's
// sibling z untouched throughout.
func seedTree(t *testing.T) *Cache {
	t.Helper()

	c := New()
	c.SetRoots([]*FolderNode{
		folder("a", RootID, "alpha", true),
		folder("z", RootID, "zulu", false),
	}, nil)

	require.True(t, c.MergeChildren("a", []*FolderNode{folder("b", "a", "bravo", true)}, []*FileNode{}))
	require.True(t, c.MergeChildren("b", []*FolderNode{folder("c", "b", "charlie", false)}, []*FileNode{file("f1", "b", "notes.txt")}))
	return c
}

func TestSetRootsReplacesWholesale(t *testing.T) {
	c := New()

	_, loaded := c.Subfolders(RootID)
	assert.False(t, loaded)

	c.SetRoots([]*FolderNode{folder("a", RootID, "alpha", false)}, []*FileNode{file("r1", RootID, "readme.md")})
	roots, loaded := c.Subfolders(RootID)
	assert.True(t, loaded)
	assert.Len(t, roots, 1)
	assert.Len(t, c.RootFiles(), 1)

	c.SetRoots(nil, nil)
	roots, loaded = c.Subfolders(RootID)
	assert.True(t, loaded)
	assert.Empty(t, roots)
	assert.Empty(t, c.RootFiles())
}

func TestMergeChildrenTransitions(t *testing.T) {
	c := New()
	c.SetRoots([]*FolderNode{folder("a", RootID, "alpha", true)}, nil)

	a := c.FindFolder("a")
	require.NotNil(t, a)
	assert.False(t, a.SubFolders.IsLoaded(), "children start unknown")
	assert.True(t, a.HasChildren, "server counts stand while children are unknown")

	// empty merge for a known node means "now empty", a distinct
	// state from unknown
	require.True(t, c.MergeChildren("a", nil, nil))
	a = c.FindFolder("a")
	assert.True(t, a.SubFolders.IsLoaded())
	assert.Zero(t, a.SubFolders.Len())
	assert.True(t, a.Files.IsLoaded())
	assert.False(t, a.HasChildren)

	assert.False(t, c.MergeChildren("missing", nil, nil))
}

func TestMergeChildrenIdempotent(t *testing.T) {
	c1 := seedTree(t)
	c2 := seedTree(t)

	sub := []*FolderNode{folder("d", "a", "delta", false)}
	files := []*FileNode{file("f2", "a", "todo.txt")}

	require.True(t, c1.MergeChildren("a", sub, files))

	require.True(t, c2.MergeChildren("a", sub, files))
	require.True(t, c2.MergeChildren("a", sub, files))

	assert.Equal(t, c1.Roots(), c2.Roots())
	assert.Equal(t, c1.RootFiles(), c2.RootFiles())
}

func TestMergeSubfoldersLeavesFilesAlone(t *testing.T) {
	c := seedTree(t)

	require.True(t, c.MergeSubfolders("b", []*FolderNode{}))
	b := c.FindFolder("b")
	assert.Zero(t, b.SubFolders.Len())
	assert.Equal(t, 1, b.Files.Len(), "file list untouched by folder-only merge")
	assert.True(t, b.HasChildren, "loaded file keeps the node non-empty")
}

func TestMergeSubfoldersKeepsHasChildrenWhenFilesUnknown(t *testing.T) {
	c := New()
	c.SetRoots([]*FolderNode{folder("a", RootID, "alpha", true)}, nil)

	require.True(t, c.MergeSubfolders("a", nil))
	a := c.FindFolder("a")
	assert.True(t, a.SubFolders.IsLoaded())
	assert.False(t, a.Files.IsLoaded())
	assert.True(t, a.HasChildren, "unseen files may still exist")
}

func TestInsertFilesIntoUnknownListIsDropped(t *testing.T) {
	c := New()
	c.SetRoots([]*FolderNode{folder("a", RootID, "alpha", false)}, nil)

	assert.False(t, c.InsertFiles("a", []*FileNode{file("fx", "a", "x.txt")}))
	a := c.FindFolder("a")
	assert.False(t, a.Files.IsLoaded(), "insert must not fabricate a loaded state")
}

func TestInsertFilesDedupsByID(t *testing.T) {
	c := seedTree(t)

	assert.False(t, c.InsertFiles("b", []*FileNode{file("f1", "b", "notes.txt")}))

	require.True(t, c.InsertFiles("b", []*FileNode{
		file("f1", "b", "notes.txt"),
		file("f2", "b", "other.txt"),
	}))
	b := c.FindFolder("b")
	assert.Equal(t, 2, b.Files.Len())
}

func TestInsertFilesAtRoot(t *testing.T) {
	c := New()
	assert.False(t, c.InsertFiles(RootID, []*FileNode{file("r1", RootID, "r.txt")}), "roots not loaded yet")

	c.SetRoots(nil, nil)
	require.True(t, c.InsertFiles(RootID, []*FileNode{file("r1", RootID, "r.txt")}))
	assert.Len(t, c.RootFiles(), 1)
}

func TestRemoveLastFileClearsHasChildrenLocally(t *testing.T) {
	c := seedTree(t)

	require.True(t, c.MergeChildren("c", nil, []*FileNode{file("f3", "c", "only.txt")}))
	require.True(t, c.FindFolder("c").HasChildren)

	require.True(t, c.RemoveFile("f3"))
	cNode := c.FindFolder("c")
	assert.False(t, cNode.HasChildren)
	assert.True(t, cNode.Files.IsLoaded())
	assert.Zero(t, cNode.Files.Len())

	assert.False(t, c.RemoveFile("f3"), "already gone")
}

func TestRenameFilePreservesUntouchedSubtrees(t *testing.T) {
	c := seedTree(t)

	beforeZ := c.Roots()[1]
	beforeC := c.FindFolder("c")

	require.True(t, c.RenameFile("f1", "renamed.txt"))

	b := c.FindFolder("b")
	require.Equal(t, 1, b.Files.Len())
	assert.Equal(t, "renamed.txt", b.Files.Items()[0].Name)

	// only the ancestor chain of f1's parent is rebuilt
	assert.Same(t, beforeZ, c.Roots()[1])
	assert.Same(t, beforeC, c.FindFolder("c"))
}

func TestRenameFolder(t *testing.T) {
	c := seedTree(t)

	beforeB := c.FindFolder("b")
	require.True(t, c.RenameFolder("b", "bravo-2"))

	b := c.FindFolder("b")
	assert.Equal(t, "bravo-2", b.Name)
	assert.NotSame(t, beforeB, b)
	assert.Equal(t, beforeB.Files, b.Files, "children carried over")

	assert.False(t, c.RenameFolder("missing", "x"))
}

func TestRemoveFolderRecomputesParent(t *testing.T) {
	c := seedTree(t)

	require.True(t, c.RemoveFolder("c"))
	b := c.FindFolder("b")
	assert.Zero(t, b.SubFolders.Len())
	assert.True(t, b.HasChildren, "b still holds a file")

	require.True(t, c.RemoveFile("f1"))
	require.True(t, c.RemoveFolder("b"))
	a := c.FindFolder("a")
	assert.False(t, a.HasChildren)

	assert.Nil(t, c.FindFolder("b"), "removed subtree is discarded")
}

func TestRemoveFolderFromRoots(t *testing.T) {
	c := seedTree(t)

	require.True(t, c.RemoveFolder("z"))
	assert.Len(t, c.Roots(), 1)
	assert.False(t, c.RemoveFolder("z"))
}

func TestRemoveThenInsertFolderRestoresEquivalentTree(t *testing.T) {
	c := seedTree(t)

	original := c.FindFolder("c")
	require.True(t, c.RemoveFolder("c"))
	require.True(t, c.InsertFolder(folder("c", "b", "charlie", false)))

	restored := c.FindFolder("c")
	require.NotNil(t, restored)
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.ParentID, restored.ParentID)
	assert.Equal(t, original.HasChildren, restored.HasChildren)
}

func TestInsertFolderIntoUnknownListIsDropped(t *testing.T) {
	c := New()
	c.SetRoots([]*FolderNode{folder("a", RootID, "alpha", false)}, nil)

	assert.False(t, c.InsertFolder(folder("n", "a", "new", false)))
	assert.False(t, c.FindFolder("a").SubFolders.IsLoaded())
}

func TestInsertFolderAtRootAndNested(t *testing.T) {
	c := seedTree(t)

	require.True(t, c.InsertFolder(folder("r2", RootID, "root-2", false)))
	assert.Len(t, c.Roots(), 3)

	require.True(t, c.InsertFolder(folder("d", "b", "delta", false)))
	b := c.FindFolder("b")
	assert.Equal(t, 2, b.SubFolders.Len())
	assert.True(t, b.HasChildren)

	// re-inserting an existing id replaces the entry, not duplicates it
	require.True(t, c.InsertFolder(folder("d", "b", "delta-2", false)))
	b = c.FindFolder("b")
	assert.Equal(t, 2, b.SubFolders.Len())
}

func TestLastMergeWins(t *testing.T) {
	c := seedTree(t)

	first := []*FolderNode{folder("x1", "a", "x1", false)}
	second := []*FolderNode{folder("x2", "a", "x2", false)}

	require.True(t, c.MergeChildren("a", first, nil))
	require.True(t, c.MergeChildren("a", second, nil))

	a := c.FindFolder("a")
	require.Equal(t, 1, a.SubFolders.Len())
	assert.Equal(t, "x2", a.SubFolders.Items()[0].ID)
}

func TestChildrenTriState(t *testing.T) {
	var unknown Children[*FileNode]
	assert.False(t, unknown.IsLoaded())
	assert.Nil(t, unknown.Items())

	empty := Loaded[*FileNode](nil)
	assert.True(t, empty.IsLoaded())
	assert.NotNil(t, empty.Items())
	assert.Zero(t, empty.Len())
}
