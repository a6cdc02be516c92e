package es

import "time"

// PortfolioES 写入 ES 的作品集文档，只收录已发布且公开的作品集
type PortfolioES struct {
	ID          uint64    `json:"id"`
	UserID      string    `json:"user_id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	ProfileName string    `json:"profile_name"`
	Title       string    `json:"title"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location,omitempty"`
	Skills      []string  `json:"skills"`
	TemplateID  uint64    `json:"template_id"`
	ViewCount   int64     `json:"view_count"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
