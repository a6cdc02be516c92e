package identity

import (
	"Folioforge/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// clerkProvider 基于 Clerk Backend API 的 Provider 实现
type clerkProvider struct {
	client       *resty.Client
	countTimeout time.Duration
}

func NewClerkProvider(cfg config.IdentityConfig) Provider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.SecretKey).
		SetTimeout(10 * time.Second)

	return &clerkProvider{
		client:       client,
		countTimeout: time.Duration(cfg.CountTimeout) * time.Second,
	}
}

type clerkUser struct {
	ID             string `json:"id"`
	PublicMetadata struct {
		Role string `json:"role"`
		Plan string `json:"plan"`
	} `json:"public_metadata"`
}

func (s *clerkProvider) GetCapabilities(ctx context.Context, userID string) (*Capabilities, error) {
	var user clerkUser
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/v1/users/" + userID)
	if err != nil {
		return nil, errors.Wrap(err, "查询用户能力失败")
	}
	if resp.IsError() {
		return nil, fmt.Errorf("查询用户能力失败: 状态码 %d", resp.StatusCode())
	}

	capabilities := &Capabilities{
		Role: user.PublicMetadata.Role,
		Plan: user.PublicMetadata.Plan,
	}
	if capabilities.Role == "" {
		capabilities.Role = "user"
	}
	if capabilities.Plan == "" {
		capabilities.Plan = "free"
	}
	return capabilities, nil
}

func (s *clerkProvider) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.countTimeout)
	defer cancel()

	var result struct {
		TotalCount int64 `json:"total_count"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/v1/users/count")
	if err != nil {
		return 0, errors.Wrap(err, "统计用户总数失败")
	}
	if resp.IsError() {
		return 0, fmt.Errorf("统计用户总数失败: 状态码 %d", resp.StatusCode())
	}
	return result.TotalCount, nil
}

func (s *clerkProvider) FindExternalIDByEmail(ctx context.Context, email string) (string, error) {
	var users []clerkUser
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&users).
		SetQueryParam("email_address", email).
		Get("/v1/users")
	if err != nil {
		return "", errors.Wrap(err, "按邮箱查询用户失败")
	}
	if resp.IsError() {
		return "", fmt.Errorf("按邮箱查询用户失败: 状态码 %d", resp.StatusCode())
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].ID, nil
}
