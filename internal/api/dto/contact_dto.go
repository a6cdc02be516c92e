package dto

import (
	"Folioforge/internal/model"
)

// ContactSubmitDTO 公开页的留言提交
type ContactSubmitDTO struct {
	Name    string `json:"name" binding:"required" validate:"min=2,max=50"`
	Email   string `json:"email" binding:"required" validate:"email"`
	Subject string `json:"subject" binding:"required" validate:"min=5,max=100"`
	Message string `json:"message" binding:"required" validate:"min=10,max=1000"`
}

// ContactListDTO 留言分页列表
type ContactListDTO struct {
	Contacts   []*model.Contact `json:"contacts"`
	Pagination PageDTO          `json:"pagination"`
	Unread     int64            `json:"unread"`
}

// ContactQuery 留言列表查询参数
type ContactQuery struct {
	PortfolioID uint64 `form:"portfolio_id"`
	Status      string `form:"status" validate:"omitempty,oneof=unread read archived"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// ContactStatusDTO 留言状态流转
type ContactStatusDTO struct {
	Status string `json:"status" binding:"required" validate:"oneof=unread read archived"`
}
