package domain

import "time"

// File domain model. Content lives in the relational store and is
// treated as immutable after creation; renames never touch it.
type File struct {
	ID        string
	Name      string
	FolderID  string
	Mime      string
	Size      int64
	Content   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the file sits at the top level.
func (f *File) IsRoot() bool {
	return f.FolderID == RootFolderID
}
