package models

import "time"

const (
	TransactionStatusPending   = "pending"
	TransactionStatusSucceeded = "succeeded"
	TransactionStatusCanceled  = "canceled"
)

// Transaction tracks a single provider payment from link creation to its
// terminal state. Rows are never deleted; confirmed webhooks only flip the
// status.
type Transaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PaymentID    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"payment_id"`
	TgID         int64     `gorm:"not null;index" json:"tg_id"`
	Subscription string    `gorm:"type:text;not null" json:"subscription"`
	Amount       string    `gorm:"type:varchar(32);not null" json:"amount"`
	Currency     string    `gorm:"type:varchar(8);not null" json:"currency"`
	Status       string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
