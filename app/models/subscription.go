package models

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription is the user's current VPN entitlement. One row per Telegram
// user; successful payments extend ExpiresAt instead of creating new rows.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TgID      int64     `gorm:"not null;uniqueIndex" json:"tg_id"`
	Devices   int       `gorm:"not null;default:1" json:"devices"`
	ExpiresAt time.Time `gorm:"type:timestamp;not null" json:"expires_at"`
	Status    string    `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
