package treecache

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildRandomCache derives a small three-level tree from seed so
// that a property can rebuild the identical cache twice.
func buildRandomCache(seed int64) (*Cache, []string) {
	r := rand.New(rand.NewSource(seed))

	c := New()
	var folderIDs []string

	var roots []*FolderNode
	for i := 0; i < 1+r.Intn(3); i++ {
		id := fmt.Sprintf("r%d", i)
		roots = append(roots, folder(id, RootID, "root-"+id, r.Intn(2) == 0))
		folderIDs = append(folderIDs, id)
	}
	c.SetRoots(roots, nil)

	for _, rootID := range folderIDs {
		if r.Intn(3) == 0 {
			continue // leave this root's children unknown
		}
		var subs []*FolderNode
		var files []*FileNode
		for j := 0; j < r.Intn(3); j++ {
			id := fmt.Sprintf("%s-s%d", rootID, j)
			subs = append(subs, folder(id, rootID, "sub-"+id, false))
		}
		for j := 0; j < r.Intn(3); j++ {
			id := fmt.Sprintf("%s-f%d", rootID, j)
			files = append(files, file(id, rootID, id+".txt"))
		}
		c.MergeChildren(rootID, subs, files)
		for _, s := range subs {
			folderIDs = append(folderIDs, s.ID)
		}
	}
	return c, folderIDs
}

// Merging the same payload twice must leave the tree exactly as
// merging it once does.
func TestPropertyMergeChildrenIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("merge twice equals merge once", prop.ForAll(
		func(seed int64, pick int) bool {
			once, ids := buildRandomCache(seed)
			twice, _ := buildRandomCache(seed)

			target := ids[pick%len(ids)]
			subs := []*FolderNode{folder(target+"-new", target, "new", false)}
			files := []*FileNode{file(target+"-nf", target, "new.txt")}

			once.MergeChildren(target, subs, files)
			twice.MergeChildren(target, subs, files)
			twice.MergeChildren(target, subs, files)

			return reflect.DeepEqual(once.Roots(), twice.Roots())
		},
		gen.Int64(),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// Renaming a folder and renaming it back must restore the original
// tree, and the rename itself must not rebuild unrelated roots.
func TestPropertyRenameFolderRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("rename then rename back restores the tree", prop.ForAll(
		func(seed int64, pick int) bool {
			c, ids := buildRandomCache(seed)
			target := ids[pick%len(ids)]

			before := c.Roots()
			original := c.FindFolder(target).Name

			if !c.RenameFolder(target, original+"-renamed") {
				return false
			}
			if !c.RenameFolder(target, original) {
				return false
			}
			return reflect.DeepEqual(before, c.Roots())
		},
		gen.Int64(),
		gen.IntRange(0, 100),
	))

	properties.Property("rename keeps unrelated roots pointer-identical", prop.ForAll(
		func(seed int64, pick int) bool {
			c, ids := buildRandomCache(seed)
			target := ids[pick%len(ids)]

			before := c.Roots()
			if !c.RenameFolder(target, "renamed") {
				return false
			}
			after := c.Roots()

			for i := range before {
				onPath := before[i].ID == target || findFolder([]*FolderNode{before[i]}, target) != nil
				if !onPath && before[i] != after[i] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// Removing a childless folder and inserting an equivalent payload
// must restore an observably equivalent node.
func TestPropertyRemoveInsertFolderRestores(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("remove then insert restores an equivalent folder", prop.ForAll(
		func(seed int64, pick int) bool {
			c, ids := buildRandomCache(seed)

			// only leaves qualify: children are discarded on remove
			var leaves []string
			for _, id := range ids {
				n := c.FindFolder(id)
				if n.SubFolders.Len() == 0 && n.Files.Len() == 0 {
					leaves = append(leaves, id)
				}
			}
			if len(leaves) == 0 {
				return true
			}
			target := leaves[pick%len(leaves)]
			original := c.FindFolder(target)

			if !c.RemoveFolder(target) {
				return false
			}
			payload := folder(original.ID, original.ParentID, original.Name, original.HasChildren)
			if !c.InsertFolder(payload) {
				// dropped insert is valid only when the parent's
				// list was never loaded
				parent := c.FindFolder(original.ParentID)
				return parent != nil && !parent.SubFolders.IsLoaded()
			}

			restored := c.FindFolder(target)
			return restored != nil &&
				restored.ID == original.ID &&
				restored.Name == original.Name &&
				restored.ParentID == original.ParentID &&
				restored.HasChildren == original.HasChildren
		},
		gen.Int64(),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
