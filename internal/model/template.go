package model

import (
	"time"
)

const (
	TemplateStatusActive   = "active"
	TemplateStatusInactive = "inactive"
)

type Template struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_template_title" json:"title"`
	Description    string    `gorm:"type:varchar(500);not null" json:"description"`
	Tags           []string  `gorm:"serializer:json" json:"tags"`
	Thumbnail      string    `gorm:"type:varchar(512);not null" json:"thumbnail"`
	Font           string    `gorm:"type:varchar(100);not null" json:"font"`
	PrimaryColor   string    `gorm:"type:varchar(7);not null" json:"primary_color"`
	SecondaryColor string    `gorm:"type:varchar(7);not null" json:"secondary_color"`
	Premium        bool      `gorm:"not null;default:0" json:"premium"`
	Status         string    `gorm:"type:varchar(16);not null;default:active" json:"status"` // active / inactive
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Template) TableName() string {
	return "templates"
}
