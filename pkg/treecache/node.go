package treecache

// RootID is the parent id sentinel for top-level nodes.
const RootID = ""

// FolderNode is a folder as the cache knows it. Nodes are treated as
// immutable once inside the cache: every mutation copies the node and
// the chain of its ancestors, so untouched subtrees keep pointer
// identity across operations.
type FolderNode struct {
	ID       string
	Name     string
	ParentID string

	// HasChildren mirrors the server-side grouped counts and is
	// valid even while SubFolders and Files are still unknown.
	HasChildren bool

	SubFolders Children[*FolderNode]
	Files      Children[*FileNode]
}

// FileNode is a file leaf. Files are never search roots.
type FileNode struct {
	ID       string
	Name     string
	FolderID string
	Mime     string
	Size     int64

	PreviewKind int
	Preview     []byte
	PreviewMime string
}

func (n *FolderNode) clone() *FolderNode {
	c := *n
	return &c
}

func (f *FileNode) clone() *FileNode {
	c := *f
	return &c
}

// localChildCount counts what the cache can see; unknown lists count
// as zero, matching how hasChildren is patched after local mutations.
func (n *FolderNode) localChildCount() int {
	return n.SubFolders.Len() + n.Files.Len()
}
