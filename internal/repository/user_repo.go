package repository

import (
	"Folioforge/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	UpsertUser(ctx context.Context, user *model.User) error
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePlanByEmail(ctx context.Context, email, plan string) (int64, error)
	UpdatePlanByExternalID(ctx context.Context, externalID, plan string) (int64, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepo {
	return &UserRepoImpl{
		db: db,
	}
}

// UpsertUser 以外部身份 ID 为准写入，已有记录只刷新邮箱
func (s UserRepoImpl) UpsertUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
	}).Create(user).Error
}

func (s UserRepoImpl) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s UserRepoImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s UserRepoImpl) UpdatePlanByEmail(ctx context.Context, email, plan string) (int64, error) {
	return s.updatePlan(ctx, "email = ?", email, plan)
}

func (s UserRepoImpl) UpdatePlanByExternalID(ctx context.Context, externalID, plan string) (int64, error) {
	return s.updatePlan(ctx, "external_id = ?", externalID, plan)
}

func (s UserRepoImpl) updatePlan(ctx context.Context, where, arg, plan string) (int64, error) {
	updates := map[string]interface{}{"plan": plan}
	if plan == model.PlanPremium {
		updates["upgraded_at"] = time.Now()
	}
	result := s.db.WithContext(ctx).Model(&model.User{}).Where(where, arg).Updates(updates)
	return result.RowsAffected, result.Error
}
