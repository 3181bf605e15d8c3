package model

import "time"

type ModelLike struct {
	ID uint64 `gorm:"primaryKey"`

	ModelID uint64 `gorm:"column:model_id;not null;uniqueIndex:uk_model_user,priority:1"`

	UserEmail string `gorm:"column:user_email;size:255;not null;uniqueIndex:uk_model_user,priority:2"`

	CreatedAt time.Time
}

// TableName returns the database table name.
func (ModelLike) TableName() string {
	return "model_like"
}
