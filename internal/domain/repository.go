// Package domain defines the entities and repository contracts.
package domain

import "context"

// FolderRepository folder storage contract
type FolderRepository interface {
	// GetByID fetches a folder by id, nil when absent
	GetByID(ctx context.Context, id string) (*Folder, error)

	// ListRoots lists top-level folders
	ListRoots(ctx context.Context) ([]*Folder, error)

	// ListSubfolders lists the immediate subfolders of parentID
	ListSubfolders(ctx context.Context, parentID string) ([]*Folder, error)

	// CountSubfoldersGroupedByParent returns subfolder counts per
	// parent id for all given ids in one grouped query
	CountSubfoldersGroupedByParent(ctx context.Context, parentIDs []string) (map[string]int64, error)

	// Create inserts a folder
	Create(ctx context.Context, folder *Folder) (*Folder, error)

	// Rename updates a folder's name
	Rename(ctx context.Context, id string, name string) error

	// Delete removes a folder and, transitively, its subfolders and
	// files
	Delete(ctx context.Context, id string) error
}

// FileRepository file storage contract
type FileRepository interface {
	// GetByID fetches a file by id, nil when absent
	GetByID(ctx context.Context, id string) (*File, error)

	// ListByFolder lists the files directly inside folderID
	ListByFolder(ctx context.Context, folderID string) ([]*File, error)

	// CountFilesGroupedByFolder returns file counts per folder id
	// for all given ids in one grouped query
	CountFilesGroupedByFolder(ctx context.Context, folderIDs []string) (map[string]int64, error)

	// Create inserts a file
	Create(ctx context.Context, file *File) (*File, error)

	// Rename updates a file's name
	Rename(ctx context.Context, id string, name string) error

	// Delete removes a file
	Delete(ctx context.Context, id string) error
}
