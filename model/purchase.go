package model

import "time"

const (
	PurchaseStatusHeld     = "held"
	PurchaseStatusReleased = "released"
)

type Purchase struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ModelID   uint64 `gorm:"column:model_id;not null;uniqueIndex:uk_model_buyer,priority:1" json:"model_id"`
	ModelName string `gorm:"column:model_name;size:255;not null" json:"model_name"`

	BuyerEmail  string `gorm:"column:buyer_email;size:255;not null;uniqueIndex:uk_model_buyer,priority:2" json:"buyer_email"`
	AuthorEmail string `gorm:"column:author_email;size:255;not null;index" json:"author_email"`

	// 金额以分为单位 入账后经过冻结期才可提现
	Price    int64  `gorm:"column:price;not null" json:"price"`
	OrderRef string `gorm:"column:order_ref;size:64;not null" json:"order_ref"`

	Status    string    `gorm:"column:status;size:16;not null;default:'held';index" json:"status"`
	ReleaseAt time.Time `gorm:"column:release_at;not null" json:"release_at"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Purchase) TableName() string {
	return "purchase"
}
