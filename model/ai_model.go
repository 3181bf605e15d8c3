package model

import "time"

const (
	ModelStatusPending  = "pending"
	ModelStatusApproved = "approved"
	ModelStatusRejected = "rejected"
)

const (
	StorageTypeZip   = "zip"
	StorageTypeDrive = "drive"
)

type Model struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Name string `gorm:"column:name;size:255;not null" json:"name"`

	AuthorEmail string `gorm:"column:author_email;size:255;not null;index" json:"author_email"`

	Description string `gorm:"column:description;type:text" json:"description"`
	Features    string `gorm:"column:features;type:text" json:"features,omitempty"`
	UseCases    string `gorm:"column:use_cases;type:text" json:"use_cases,omitempty"`
	Setup       string `gorm:"column:setup;type:text" json:"setup,omitempty"`
	Tags        string `gorm:"column:tags;size:512" json:"tags"`
	ImgURL      string `gorm:"column:img_url;size:512" json:"img_url,omitempty"`

	// 价格以分为单位
	Price int64 `gorm:"column:price;not null;default:0" json:"price"`

	Status          string `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`
	RejectionReason string `gorm:"column:rejection_reason;size:500" json:"rejection_reason,omitempty"`

	// likes 是 model_like 行数的派生计数 与点赞在同一事务内维护
	Likes     int64 `gorm:"column:likes;not null;default:0" json:"likes"`
	Downloads int64 `gorm:"column:downloads;not null;default:0" json:"downloads"`

	StorageType string     `gorm:"column:storage_type;size:16;not null;default:'zip'" json:"storage_type"`
	Bucket      string     `gorm:"column:bucket;size:64" json:"-"`
	ObjectName  string     `gorm:"column:object_name;size:512" json:"-"`
	URL         string     `gorm:"column:url;size:1024" json:"url,omitempty"`
	FileName    string     `gorm:"column:file_name;size:255" json:"file_name,omitempty"`
	FileSize    int64      `gorm:"column:file_size;not null;default:0" json:"file_size,omitempty"`
	MimeType    string     `gorm:"column:mime_type;size:128" json:"mime_type,omitempty"`
	UploadedAt  *time.Time `gorm:"column:uploaded_at" json:"uploaded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Model) TableName() string {
	return "ai_model"
}
