package model

import (
	"time"
)

const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// User 外部身份提供商账号在本地的镜像，身份与会话本身由外部签发
type User struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_external_id" json:"external_id"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_email" json:"email"`
	Plan       string    `gorm:"type:varchar(16);not null;default:free" json:"plan"` // free / premium
	Status     string    `gorm:"type:varchar(16);not null;default:active" json:"status"`
	UpgradedAt *time.Time `json:"upgraded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
