package model

import "time"

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

type WithdrawalRequest struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserEmail   string `gorm:"column:user_email;size:255;not null;index" json:"user_email"`
	PaypalEmail string `gorm:"column:paypal_email;size:255;not null" json:"paypal_email"`

	Amount int64 `gorm:"column:amount;not null" json:"amount"`

	// pending -> approved 或 pending -> rejected 均为终态
	Status         string `gorm:"column:status;size:16;not null;default:'pending';index" json:"status"`
	RejectedReason string `gorm:"column:rejected_reason;size:500" json:"rejected_reason,omitempty"`

	SubmittedAt time.Time  `gorm:"column:submitted_at;not null" json:"submitted_at"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
}

// TableName returns the database table name.
func (WithdrawalRequest) TableName() string {
	return "withdrawal_request"
}
