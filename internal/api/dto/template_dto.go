package dto

import (
	"Folioforge/internal/model"
)

// TemplateBaseDTO 创建/更新模板的请求体
type TemplateBaseDTO struct {
	Title          string   `json:"title" binding:"required" validate:"min=1,max=100"`
	Description    string   `json:"description" binding:"required" validate:"min=1,max=500"`
	Tags           []string `json:"tags" validate:"max=10"`
	Thumbnail      string   `json:"thumbnail" binding:"required" validate:"url"`
	Font           string   `json:"font" binding:"required" validate:"min=1,max=100"`
	PrimaryColor   string   `json:"primary_color" binding:"required" validate:"hexcolor"`
	SecondaryColor string   `json:"secondary_color" binding:"required" validate:"hexcolor"`
	Premium        bool     `json:"premium"`
	Status         string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// TemplateListDTO 模板分页列表
type TemplateListDTO struct {
	Templates  []*model.Template `json:"templates"`
	Pagination PageDTO           `json:"pagination"`
}

// TemplateQuery 模板列表查询参数
type TemplateQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=active inactive"`
	Tag      string `form:"tag" validate:"omitempty,max=50"`
	Premium  *bool  `form:"premium"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}
