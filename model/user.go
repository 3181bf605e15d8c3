package model

import (
	"gorm.io/gorm"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID uint64 `gorm:"primaryKey"`

	UserName string `gorm:"column:user_name;type:varchar(50);not null;unique"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique"`

	NickName  string `gorm:"column:nick_name;type:varchar(80);not null;default:''"`
	AvatarURL string `gorm:"column:avatar_url;type:varchar(512);not null;default:''"`
	Bio       string `gorm:"column:bio;type:varchar(500);not null;default:''"`

	Role string `gorm:"column:role;type:varchar(20);not null;default:'user'"`

	IsActive bool `gorm:"column:is_active;not null;default:false"`

	// 可提现余额由收益流水动态计算 这里只记录已提现总额
	WithdrawnAmount int64 `gorm:"column:withdrawn_amount;not null;default:0"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
