package model

import (
	"time"
)

const (
	ContactStatusUnread   = "unread"
	ContactStatusRead     = "read"
	ContactStatusArchived = "archived"
)

// Contact 针对某个作品集提交的留言，同一邮箱对同一作品集只允许一条
type Contact struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	PortfolioID uint64    `gorm:"not null;uniqueIndex:idx_portfolio_email" json:"portfolio_id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_portfolio_email" json:"email"`
	Subject     string    `gorm:"type:varchar(100);not null" json:"subject"`
	Message     string    `gorm:"type:varchar(1000);not null" json:"message"`
	Status      string    `gorm:"type:varchar(16);not null;default:unread" json:"status"` // unread / read / archived
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}
