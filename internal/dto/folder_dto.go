// Package dto defines the wire-facing request and response shapes.
package dto

import "github.com/skyring/file-explorer-service/pkg/timex"

// FolderDTO folder payload. SubFolders and Files are only populated
// on aggregate responses; a plain folder fetch leaves them empty.
type FolderDTO struct {
	ID          string       `json:"id" form:"id"`
	Name        string       `json:"name" form:"name"`
	ParentID    string       `json:"parentFolderId" form:"parentFolderId"`
	HasChildren bool         `json:"hasChildren"`
	SubFolders  []*FolderDTO `json:"subFolders"`
	Files       []*FileDTO   `json:"files"`
	UpdatedAt   timex.Time   `json:"updatedAt"`
	CreatedAt   timex.Time   `json:"createdAt"`
}

// FolderCreateRequest create folder request. An empty parent id
// creates a top-level folder.
type FolderCreateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=255"`
	ParentID string `json:"parentFolderId" form:"parentFolderId"`
}

// FolderRenameRequest rename folder request
type FolderRenameRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

// AffectedDTO mutation acknowledgment carrying the affected id so a
// client cache can patch itself after the ack.
type AffectedDTO struct {
	ID string `json:"id"`
}
