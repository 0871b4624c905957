package dto

import "github.com/skyring/file-explorer-service/pkg/timex"

// Preview kinds on the wire.
const (
	PreviewKindNone  = 0
	PreviewKindImage = 1
	PreviewKindText  = 2
)

// FileDTO file payload. Preview carries the derived artifact bytes
// base64-encoded by JSON; kind None leaves it null.
type FileDTO struct {
	ID          string     `json:"id" form:"id"`
	Name        string     `json:"name" form:"name"`
	FolderID    string     `json:"folderId" form:"folderId"`
	Mime        string     `json:"mime" form:"mime"`
	Size        int64      `json:"size" form:"size"`
	PreviewKind int        `json:"previewKind"`
	Preview     []byte     `json:"preview"`
	PreviewMime string     `json:"previewMime"`
	UpdatedAt   timex.Time `json:"updatedAt"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// FileContentDTO single file fetch including raw content.
type FileContentDTO struct {
	FileDTO
	Content []byte `json:"content"`
}

// FileRenameRequest rename file request
type FileRenameRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

// FileUploadRequest upload query parameters
type FileUploadRequest struct {
	ParentID string `json:"parentId" form:"parentId"`
}

// FilePreviewDTO standalone preview fetch response.
type FilePreviewDTO struct {
	ID          string `json:"id"`
	PreviewKind int    `json:"previewKind"`
	Preview     []byte `json:"preview"`
	PreviewMime string `json:"previewMime"`
}
