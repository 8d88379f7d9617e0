package models

import "time"

// Promocode is a redeemable code granting a fixed subscription duration.
// The table is shared with the bot's activation flow, so the column names
// are part of an external contract.
type Promocode struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	Duration    int       `gorm:"not null" json:"duration"`
	IsActivated bool      `gorm:"not null;default:false" json:"is_activated"`
	ActivatedBy *int64    `gorm:"default:null" json:"activated_by,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Promocode) TableName() string {
	return "promocodes"
}
