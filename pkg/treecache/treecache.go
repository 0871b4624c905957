// Package treecache keeps a partially-loaded mirror of the folder
// tree on the consuming side. Child lists are tri-state (unknown,
// loaded-empty, loaded) and every mutation is a pure transform:
// only the mutated node and its ancestor chain are rebuilt, sibling
// subtrees keep pointer identity so consumers can skip re-rendering
// them.
//
// The cache has no internal locking. Mutations are expected to run
// on the consumer's single logical thread; when two fetches for the
// same parent race, the last merge wins.
package treecache

// Cache holds the top-level roots and owns every node reachable from
// them. Consumers get read-only views and mutate through the cache
// operations only.
type Cache struct {
	roots       []*FolderNode
	rootFiles   []*FileNode
	rootsLoaded bool
}

func New() *Cache {
	return &Cache{}
}

// Roots returns the top-level folders, nil before the first SetRoots.
func (c *Cache) Roots() []*FolderNode {
	return c.roots
}

// RootFiles returns the top-level files.
func (c *Cache) RootFiles() []*FileNode {
	return c.rootFiles
}

// SetRoots replaces the top level wholesale after a root fetch.
func (c *Cache) SetRoots(folders []*FolderNode, files []*FileNode) {
	if folders == nil {
		folders = []*FolderNode{}
	}
	if files == nil {
		files = []*FileNode{}
	}
	c.roots = folders
	c.rootFiles = files
	c.rootsLoaded = true
}

// FindFolder looks a folder up by id, depth-first over subfolder
// lists. Files are leaves and never searched into.
func (c *Cache) FindFolder(id string) *FolderNode {
	return findFolder(c.roots, id)
}

// Subfolders returns the loaded subfolder list of id and whether it
// has been fetched. RootID addresses the top level.
func (c *Cache) Subfolders(id string) ([]*FolderNode, bool) {
	if id == RootID {
		return c.roots, c.rootsLoaded
	}
	n := findFolder(c.roots, id)
	if n == nil {
		return nil, false
	}
	return n.SubFolders.Items(), n.SubFolders.IsLoaded()
}

// MergeChildren replaces parentID's subfolder and file lists with the
// fetched ones. This is the only operation that moves a list from
// unknown to loaded. An empty fetch for a known node means the node
// is now empty, not that it vanished. Returns false when parentID is
// not in the tree.
func (c *Cache) MergeChildren(parentID string, subFolders []*FolderNode, files []*FileNode) bool {
	if parentID == RootID {
		c.SetRoots(subFolders, files)
		return true
	}
	roots, changed := updateFolder(c.roots, parentID, func(n *FolderNode) *FolderNode {
		nn := n.clone()
		nn.SubFolders = Loaded(subFolders)
		nn.Files = Loaded(files)
		nn.HasChildren = nn.localChildCount() > 0
		return nn
	})
	if changed {
		c.roots = roots
	}
	return changed
}

// MergeSubfolders is the folder-only merge: files stay untouched.
// When the file list is still unknown and the new subfolder list is
// empty, HasChildren is kept rather than cleared, since unseen files
// may still exist.
func (c *Cache) MergeSubfolders(parentID string, subFolders []*FolderNode) bool {
	if parentID == RootID {
		if subFolders == nil {
			subFolders = []*FolderNode{}
		}
		c.roots = subFolders
		c.rootsLoaded = true
		return true
	}
	roots, changed := updateFolder(c.roots, parentID, func(n *FolderNode) *FolderNode {
		nn := n.clone()
		nn.SubFolders = Loaded(subFolders)
		switch {
		case len(subFolders) > 0:
			nn.HasChildren = true
		case nn.Files.IsLoaded():
			nn.HasChildren = nn.Files.Len() > 0
		}
		return nn
	})
	if changed {
		c.roots = roots
	}
	return changed
}

// InsertFiles appends files not already present into parentID's file
// list. If that list has not been loaded the insert is dropped; the
// next explicit merge picks the files up.
func (c *Cache) InsertFiles(parentID string, files []*FileNode) bool {
	if len(files) == 0 {
		return false
	}
	if parentID == RootID {
		if !c.rootsLoaded {
			return false
		}
		merged, added := appendNewFiles(c.rootFiles, files)
		if !added {
			return false
		}
		c.rootFiles = merged
		return true
	}
	roots, changed := updateFolder(c.roots, parentID, func(n *FolderNode) *FolderNode {
		if !n.Files.IsLoaded() {
			return n
		}
		merged, added := appendNewFiles(n.Files.Items(), files)
		if !added {
			return n
		}
		nn := n.clone()
		nn.Files = Loaded(merged)
		nn.HasChildren = true
		return nn
	})
	if changed {
		c.roots = roots
	}
	return changed
}

// RemoveFile drops fileID from whichever node holds it and
// recomputes that node's HasChildren from what is locally loaded, so
// deleting the last child flips the affordance without a round trip.
func (c *Cache) RemoveFile(fileID string) bool {
	for i, f := range c.rootFiles {
		if f.ID == fileID {
			c.rootFiles = removeFileAt(c.rootFiles, i)
			return true
		}
	}
	roots, changed := updateFileOwner(c.roots, fileID, func(n *FolderNode) *FolderNode {
		items := n.Files.Items()
		for i, f := range items {
			if f.ID == fileID {
				nn := n.clone()
				nn.Files = Loaded(removeFileAt(items, i))
				nn.HasChildren = nn.localChildCount() > 0
				return nn
			}
		}
		return n
	})
	if changed {
		c.roots = roots
	}
	return changed
}

// RenameFile renames a file in place. Counts and children are not
// touched.
func (c *Cache) RenameFile(fileID string, newName string) bool {
	for i, f := range c.rootFiles {
		if f.ID == fileID {
			nf := f.clone()
			nf.Name = newName
			out := make([]*FileNode, len(c.rootFiles))
			copy(out, c.rootFiles)
			out[i] = nf
			c.rootFiles = out
			return true
		}
	}
	roots, changed := updateFileOwner(c.roots, fileID, func(n *FolderNode) *FolderNode {
		items := n.Files.Items()
		for i, f := range items {
			if f.ID == fileID {
				nf := f.clone()
				nf.Name = newName
				out := make([]*FileNode, len(items))
				copy(out, items)
				out[i] = nf
				nn := n.clone()
				nn.Files = Loaded(out)
				return nn
			}
		}
		return n
	})
	if changed {
		c.roots = roots
	}
	return changed
}

// RenameFolder renames a folder in place.
func (c *Cache) RenameFolder(folderID string, newName string) bool {
	roots, changed := updateFolder(c.roots, folderID, func(n *FolderNode) *FolderNode {
		nn := n.clone()
		nn.Name = newName
		return nn
	})
	if changed {
		c.roots = roots
	}
	return changed
}

// RemoveFolder drops folderID from its parent's subfolder list (or
// from the roots) and recomputes the parent's HasChildren. The
// removed subtree is discarded with it.
func (c *Cache) RemoveFolder(folderID string) bool {
	roots, changed := removeFolderRec(c.roots, folderID)
	if changed {
		c.roots = roots
	}
	return changed
}

// InsertFolder merges a created folder into its parent's known
// subfolder list, or appends it to the roots when it is top-level.
// A parent whose list is not loaded drops the insert, mirroring
// InsertFiles.
func (c *Cache) InsertFolder(folder *FolderNode) bool {
	if folder == nil {
		return false
	}
	if folder.ParentID == RootID {
		for i, n := range c.roots {
			if n.ID == folder.ID {
				out := make([]*FolderNode, len(c.roots))
				copy(out, c.roots)
				out[i] = folder
				c.roots = out
				return true
			}
		}
		out := make([]*FolderNode, len(c.roots), len(c.roots)+1)
		copy(out, c.roots)
		c.roots = append(out, folder)
		return true
	}
	roots, changed := updateFolder(c.roots, folder.ParentID, func(n *FolderNode) *FolderNode {
		if !n.SubFolders.IsLoaded() {
			return n
		}
		items := n.SubFolders.Items()
		nn := n.clone()
		for i, sub := range items {
			if sub.ID == folder.ID {
				out := make([]*FolderNode, len(items))
				copy(out, items)
				out[i] = folder
				nn.SubFolders = Loaded(out)
				return nn
			}
		}
		out := make([]*FolderNode, len(items), len(items)+1)
		copy(out, items)
		nn.SubFolders = Loaded(append(out, folder))
		nn.HasChildren = true
		return nn
	})
	if changed {
		c.roots = roots
	}
	return changed
}

func findFolder(list []*FolderNode, id string) *FolderNode {
	for _, n := range list {
		if n.ID == id {
			return n
		}
		if n.SubFolders.IsLoaded() {
			if found := findFolder(n.SubFolders.Items(), id); found != nil {
				return found
			}
		}
	}
	return nil
}

// updateFolder applies fn to the node with the given id, rebuilding
// the chain above it. fn returning its argument unchanged means
// no-op; the original list is returned untouched.
func updateFolder(list []*FolderNode, id string, fn func(*FolderNode) *FolderNode) ([]*FolderNode, bool) {
	for i, n := range list {
		if n.ID == id {
			nn := fn(n)
			if nn == n {
				return list, false
			}
			return replaceFolderAt(list, i, nn), true
		}
		if !n.SubFolders.IsLoaded() {
			continue
		}
		sub, changed := updateFolder(n.SubFolders.Items(), id, fn)
		if changed {
			nn := n.clone()
			nn.SubFolders = Loaded(sub)
			return replaceFolderAt(list, i, nn), true
		}
	}
	return list, false
}

// updateFileOwner applies fn to the node whose loaded file list holds
// fileID.
func updateFileOwner(list []*FolderNode, fileID string, fn func(*FolderNode) *FolderNode) ([]*FolderNode, bool) {
	for i, n := range list {
		if n.Files.IsLoaded() && containsFile(n.Files.Items(), fileID) {
			nn := fn(n)
			if nn == n {
				return list, false
			}
			return replaceFolderAt(list, i, nn), true
		}
		if !n.SubFolders.IsLoaded() {
			continue
		}
		sub, changed := updateFileOwner(n.SubFolders.Items(), fileID, fn)
		if changed {
			nn := n.clone()
			nn.SubFolders = Loaded(sub)
			return replaceFolderAt(list, i, nn), true
		}
	}
	return list, false
}

func removeFolderRec(list []*FolderNode, id string) ([]*FolderNode, bool) {
	for i, n := range list {
		if n.ID == id {
			out := make([]*FolderNode, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
		if !n.SubFolders.IsLoaded() {
			continue
		}
		sub, changed := removeFolderRec(n.SubFolders.Items(), id)
		if changed {
			nn := n.clone()
			nn.SubFolders = Loaded(sub)
			nn.HasChildren = nn.localChildCount() > 0
			return replaceFolderAt(list, i, nn), true
		}
	}
	return list, false
}

func replaceFolderAt(list []*FolderNode, i int, n *FolderNode) []*FolderNode {
	out := make([]*FolderNode, len(list))
	copy(out, list)
	out[i] = n
	return out
}

func removeFileAt(list []*FileNode, i int) []*FileNode {
	out := make([]*FileNode, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out
}

func containsFile(list []*FileNode, id string) bool {
	for _, f := range list {
		if f.ID == id {
			return true
		}
	}
	return false
}

func appendNewFiles(existing []*FileNode, add []*FileNode) ([]*FileNode, bool) {
	var fresh []*FileNode
	for _, f := range add {
		if !containsFile(existing, f.ID) && !containsFile(fresh, f.ID) {
			fresh = append(fresh, f)
		}
	}
	if len(fresh) == 0 {
		return existing, false
	}
	out := make([]*FileNode, len(existing), len(existing)+len(fresh))
	copy(out, existing)
	return append(out, fresh...), true
}
