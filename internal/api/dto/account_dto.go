package dto

// CapabilitiesDTO 当前账号的角色与订阅计划
type CapabilitiesDTO struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Plan   string `json:"plan"`
}

// AccountStatsDTO 平台账号统计（管理端）
type AccountStatsDTO struct {
	TotalUsers int64 `json:"total_users"`
}

// BioSuggestDTO 个人简介生成请求
type BioSuggestDTO struct {
	Profession string   `json:"profession" binding:"required" validate:"min=2,max=100"`
	Keywords   []string `json:"keywords" validate:"max=10"`
	Tone       string   `json:"tone" validate:"omitempty,oneof=professional friendly bold"`
}

// MediaUploadDTO 上传结果
type MediaUploadDTO struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}
