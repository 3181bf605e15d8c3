package model

import "time"

const (
	NotificationModelApproval  = "model_approval"
	NotificationModelRejection = "model_rejection"
	NotificationComment        = "comment"
	NotificationPurchase       = "purchase"
)

type Notification struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserEmail string `gorm:"column:user_email;size:255;not null;index" json:"user_email"`

	Type    string `gorm:"column:type;size:32;not null" json:"type"`
	Title   string `gorm:"column:title;size:255;not null" json:"title"`
	Message string `gorm:"column:message;size:1000;not null" json:"message"`

	Read bool `gorm:"column:read;not null;default:false" json:"read"`

	RelatedModelID *uint64 `gorm:"column:related_model_id;index" json:"related_model_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Notification) TableName() string {
	return "notification"
}
