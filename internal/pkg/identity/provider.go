package identity

import (
	"context"
)

// Capabilities 外部身份提供商侧维护的账号能力
type Capabilities struct {
	Role string `json:"role"` // admin / user
	Plan string `json:"plan"` // free / premium
}

// Provider 抽象外部身份提供商的管理接口，便于在测试中替换
type Provider interface {
	// GetCapabilities 查询账号的角色与订阅计划
	GetCapabilities(ctx context.Context, userID string) (*Capabilities, error)
	// CountUsers 统计平台注册用户总数
	CountUsers(ctx context.Context) (int64, error)
	// FindExternalIDByEmail 按邮箱反查外部用户 ID，未命中返回空串
	FindExternalIDByEmail(ctx context.Context, email string) (string, error)
}
