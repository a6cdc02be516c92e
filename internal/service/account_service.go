package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/cache"
	"Folioforge/internal/pkg/consts"
	"Folioforge/internal/pkg/identity"
	"Folioforge/internal/repository"
	"context"
	log "log/slog"
	"strconv"
)

type AccountService interface {
	GetCapabilities(ctx context.Context, userID string) (*dto.CapabilitiesDTO, error)
	InvalidateCapabilities(ctx context.Context, userID string) error
	GetStats(ctx context.Context) (*dto.AccountStatsDTO, error)
	SyncUser(ctx context.Context, userID, email string) error
}

type accountServiceImpl struct {
	provider identity.Provider
	cache    *cache.Cache
	userRepo repository.UserRepo
}

func NewAccountService(provider identity.Provider, cache *cache.Cache, userRepo repository.UserRepo) AccountService {
	return &accountServiceImpl{
		provider: provider,
		cache:    cache,
		userRepo: userRepo,
	}
}

// GetCapabilities 读取账号能力，短暂缓存以避免每个请求都打到身份提供商
func (s *accountServiceImpl) GetCapabilities(ctx context.Context, userID string) (*dto.CapabilitiesDTO, error) {
	roleKey := consts.AccountRoleKey + userID
	planKey := consts.AccountPlanKey + userID

	role, roleHit, err := s.cache.Get(ctx, roleKey)
	if err != nil {
		log.WarnContext(ctx, "capability cache read error", "err", err)
	}
	plan, planHit, err := s.cache.Get(ctx, planKey)
	if err != nil {
		log.WarnContext(ctx, "capability cache read error", "err", err)
	}
	if roleHit && planHit {
		return &dto.CapabilitiesDTO{UserID: userID, Role: role, Plan: plan}, nil
	}

	capabilities, err := s.provider.GetCapabilities(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "fetch capabilities error", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}

	if err = s.cache.Set(ctx, roleKey, capabilities.Role); err != nil {
		log.WarnContext(ctx, "capability cache write error", "err", err)
	}
	if err = s.cache.Set(ctx, planKey, capabilities.Plan); err != nil {
		log.WarnContext(ctx, "capability cache write error", "err", err)
	}

	return &dto.CapabilitiesDTO{UserID: userID, Role: capabilities.Role, Plan: capabilities.Plan}, nil
}

// InvalidateCapabilities 能力变更（如套餐升级）后主动失效缓存
func (s *accountServiceImpl) InvalidateCapabilities(ctx context.Context, userID string) error {
	return s.cache.Invalidate(ctx, consts.AccountRoleKey+userID, consts.AccountPlanKey+userID)
}

func (s *accountServiceImpl) GetStats(ctx context.Context) (*dto.AccountStatsDTO, error) {
	cached, hit, err := s.cache.Get(ctx, consts.AccountUserCountKey)
	if err == nil && hit {
		if total, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return &dto.AccountStatsDTO{TotalUsers: total}, nil
		}
	}

	total, err := s.provider.CountUsers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "count users error", "err", err)
		return nil, UnExpectedError
	}

	if err = s.cache.Set(ctx, consts.AccountUserCountKey, strconv.FormatInt(total, 10)); err != nil {
		log.WarnContext(ctx, "user count cache write error", "err", err)
	}
	return &dto.AccountStatsDTO{TotalUsers: total}, nil
}

// SyncUser 登录后把外部账号镜像到本地
func (s *accountServiceImpl) SyncUser(ctx context.Context, userID, email string) error {
	if email == "" || s.userRepo == nil {
		return nil
	}
	err := s.userRepo.UpsertUser(ctx, &model.User{ExternalID: userID, Email: email})
	if err != nil {
		log.ErrorContext(ctx, "sync user error", "user_id", userID, "err", err)
		return UnExpectedError
	}
	return nil
}
