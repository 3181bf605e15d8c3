package model

import "time"

type ArchivedModel struct {
	// 保留原 Model 的主键 归档与删除在同一事务内完成
	ID uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`

	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	AuthorEmail string `gorm:"column:author_email;size:255;not null;index" json:"author_email"`

	Price int64 `gorm:"column:price;not null;default:0" json:"price"`

	StorageType string     `gorm:"column:storage_type;size:16;not null;default:'zip'" json:"storage_type"`
	Bucket      string     `gorm:"column:bucket;size:64" json:"-"`
	ObjectName  string     `gorm:"column:object_name;size:512" json:"-"`
	URL         string     `gorm:"column:url;size:1024" json:"url,omitempty"`
	FileName    string     `gorm:"column:file_name;size:255" json:"file_name,omitempty"`
	FileSize    int64      `gorm:"column:file_size;not null;default:0" json:"file_size,omitempty"`
	MimeType    string     `gorm:"column:mime_type;size:128" json:"mime_type,omitempty"`
	UploadedAt  *time.Time `gorm:"column:uploaded_at" json:"uploaded_at,omitempty"`

	ScheduledDeletionAt time.Time  `gorm:"column:scheduled_deletion_at;not null;index" json:"scheduled_deletion_at"`
	ArchivedAt          time.Time  `gorm:"column:archived_at;not null" json:"archived_at"`
	DeletionWarnedAt    *time.Time `gorm:"column:deletion_warned_at" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (ArchivedModel) TableName() string {
	return "archived_model"
}
