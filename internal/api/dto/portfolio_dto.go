package dto

import (
	"Folioforge/internal/model"
)

// PortfolioDTO 作品集详情响应，直接复用模型的 json 标签
type PortfolioDTO struct {
	*model.Portfolio
}

// PortfolioListDTO 作品集分页列表
type PortfolioListDTO struct {
	Portfolios []*model.Portfolio `json:"portfolios"`
	Pagination PageDTO            `json:"pagination"`
}

// PortfolioQuery 我的作品集列表查询参数
type PortfolioQuery struct {
	Status     string `form:"status" validate:"omitempty,oneof=draft published archived"`
	TemplateID uint64 `form:"template_id"`
	Search     string `form:"search" validate:"omitempty,max=100"`
	SortBy     string `form:"sort_by" validate:"omitempty,oneof=createdAt updatedAt name viewCount"`
	SortOrder  string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// PortfolioCardDTO 公开检索结果里的作品集卡片
type PortfolioCardDTO struct {
	ID          uint64   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	ProfileName string   `json:"profile_name"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location,omitempty"`
	Skills      []string `json:"skills"`
	ViewCount   int64    `json:"view_count"`
}

// PublicSearchDTO 公开作品集检索响应
type PublicSearchDTO struct {
	Results  []*PortfolioCardDTO `json:"results"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// SlugCheckDTO 自定义 slug 可用性检查
type SlugCheckDTO struct {
	Slug      string `form:"slug" binding:"required"`
	ExcludeID uint64 `form:"exclude_id"`
}

// SlugAvailabilityDTO 检查结果
type SlugAvailabilityDTO struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
