package model

import "github.com/skyring/file-explorer-service/pkg/timex"

const TableNameFolder = "folder"

// Folder mapped from table <folder>
type Folder struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Name      string     `gorm:"column:name;not null" json:"name" form:"name"`
	ParentID  string     `gorm:"column:parent_id;index:idx_folder_parent" json:"parentId" form:"parentId"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Folder's table name
func (*Folder) TableName() string {
	return TableNameFolder
}
