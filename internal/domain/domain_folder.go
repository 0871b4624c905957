package domain

import "time"

// RootFolderID is the parent id sentinel for top-level entries. It is
// never a concrete folder id.
const RootFolderID = ""

// RootFolderName is the display name of the synthetic root folder.
const RootFolderName = "Root"

// Folder domain model. ParentID empty means the folder sits at the
// top level.
type Folder struct {
	ID        string
	Name      string
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the folder sits at the top level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == RootFolderID
}

// SyntheticRoot returns the folder standing in for the tree root when
// a caller asks for top-level children.
func SyntheticRoot() *Folder {
	return &Folder{ID: RootFolderID, Name: RootFolderName, ParentID: RootFolderID}
}
