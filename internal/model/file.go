package model

import "github.com/skyring/file-explorer-service/pkg/timex"

const TableNameFile = "file"

// File mapped from table <file>. Content keeps the raw bytes in the
// relational store; post-creation content is immutable.
type File struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Name      string     `gorm:"column:name;not null" json:"name" form:"name"`
	FolderID  string     `gorm:"column:folder_id;index:idx_file_folder" json:"folderId" form:"folderId"`
	Mime      string     `gorm:"column:mime" json:"mime" form:"mime"`
	Size      int64      `gorm:"column:size;default:0" json:"size" form:"size"`
	Content   []byte     `gorm:"column:content;type:blob" json:"-" form:"-"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName File's table name
func (*File) TableName() string {
	return TableNameFile
}
