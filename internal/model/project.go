package model

import (
	"time"
)

// DefaultProjectThumbnail 未提供缩略图时的占位图
const DefaultProjectThumbnail = "https://images.unsplash.com/photo-1559311648-d46f5d8593d6"

type Project struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	PortfolioID   uint64     `gorm:"not null;index:idx_project_portfolio" json:"portfolio_id"`
	Title         string     `gorm:"type:varchar(200);not null" json:"title"`
	Description   string     `gorm:"type:varchar(2000);not null" json:"description"`
	Thumbnail     string     `gorm:"type:varchar(512);not null;default:''" json:"thumbnail"`
	Technologies  []string   `gorm:"serializer:json" json:"technologies"`
	DemoURL       *string    `gorm:"type:varchar(512)" json:"demo_url"`
	GithubURL     *string    `gorm:"type:varchar(512)" json:"github_url"`
	IsFeatured    bool       `gorm:"not null;default:0" json:"is_featured"`
	CompletedDate *time.Time `json:"completed_date"`
}

func (Project) TableName() string {
	return "portfolio_projects"
}
