package model

import (
	"time"
)

const (
	PortfolioStatusDraft     = "draft"
	PortfolioStatusPublished = "published"
	PortfolioStatusArchived  = "archived"
)

type Portfolio struct {
	ID         uint64            `gorm:"primaryKey" json:"id"`
	UserID     string            `gorm:"type:varchar(64);not null;index:idx_user_id" json:"user_id"`
	Name       string            `gorm:"type:varchar(100);not null;index:idx_name" json:"name"`
	TemplateID uint64            `gorm:"not null" json:"template_id"`
	Slug       string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_slug" json:"slug"`
	Status     string            `gorm:"type:varchar(16);not null;default:draft" json:"status"` // draft / published / archived
	ViewCount  int64             `gorm:"not null;default:0" json:"view_count"`
	Profile    Profile           `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	Settings   PortfolioSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// 关联关系
	Template       Template        `gorm:"foreignKey:TemplateID;references:ID" json:"template"`
	SocialLinks    []SocialLink    `gorm:"foreignKey:PortfolioID;references:ID" json:"social_links"`
	Skills         []Skill         `gorm:"foreignKey:PortfolioID;references:ID" json:"skills"`
	Certifications []Certification `gorm:"foreignKey:PortfolioID;references:ID" json:"certifications"`
	Experiences    []Experience    `gorm:"foreignKey:PortfolioID;references:ID" json:"experiences"`
	Projects       []Project       `gorm:"foreignKey:PortfolioID;references:ID" json:"projects"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// Profile 作品集内嵌的个人资料
type Profile struct {
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	Title        string  `gorm:"type:varchar(200);not null" json:"title"`
	Bio          string  `gorm:"type:varchar(1000);not null" json:"bio"`
	Location     *string `gorm:"type:varchar(100)" json:"location"`
	Email        string  `gorm:"type:varchar(255);not null" json:"email"`
	Phone        *string `gorm:"type:varchar(30)" json:"phone"`
	Website      *string `gorm:"type:varchar(512)" json:"website"`
	ProfilePhoto *string `gorm:"type:varchar(512)" json:"profile_photo"`
}

// PortfolioSettings 可见性与 SEO 设置
type PortfolioSettings struct {
	IsPublic        bool    `gorm:"not null;default:0" json:"is_public"`
	AllowComments   bool    `gorm:"not null;default:1" json:"allow_comments"`
	ShowContactInfo bool    `gorm:"not null;default:1" json:"show_contact_info"`
	CustomDomain    *string `gorm:"type:varchar(255)" json:"custom_domain"`
	SeoTitle        *string `gorm:"type:varchar(60)" json:"seo_title"`
	SeoDescription  *string `gorm:"type:varchar(160)" json:"seo_description"`
}
