package repository

import (
	"Folioforge/internal/model"
	"context"

	"gorm.io/gorm"
)

// ContactPage 分页结果
type ContactPage struct {
	Contacts   []*model.Contact
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ContactRepo interface {
	SaveContact(ctx context.Context, contact *model.Contact) error
	GetContact(ctx context.Context, id uint64) (*model.Contact, error)
	ExistsByPortfolioEmail(ctx context.Context, portfolioID uint64, email string) (bool, error)
	ListByPortfolio(ctx context.Context, portfolioID uint64, status string, page, pageSize int) (*ContactPage, error)
	ListByPortfolios(ctx context.Context, portfolioIDs []uint64, status string, page, pageSize int) (*ContactPage, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	DeleteContact(ctx context.Context, id uint64) error
	CountUnread(ctx context.Context, portfolioIDs []uint64) (int64, error)
}

type ContactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepo {
	return &ContactRepoImpl{
		db: db,
	}
}

func (s ContactRepoImpl) SaveContact(ctx context.Context, contact *model.Contact) error {
	return s.db.WithContext(ctx).Create(contact).Error
}

func (s ContactRepoImpl) GetContact(ctx context.Context, id uint64) (*model.Contact, error) {
	var contact model.Contact
	err := s.db.WithContext(ctx).First(&contact, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s ContactRepoImpl) ExistsByPortfolioEmail(ctx context.Context, portfolioID uint64, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Contact{}).
		Where("portfolio_id = ? AND email = ?", portfolioID, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s ContactRepoImpl) ListByPortfolio(ctx context.Context, portfolioID uint64, status string, page, pageSize int) (*ContactPage, error) {
	return s.ListByPortfolios(ctx, []uint64{portfolioID}, status, page, pageSize)
}

func (s ContactRepoImpl) ListByPortfolios(ctx context.Context, portfolioIDs []uint64, status string, page, pageSize int) (*ContactPage, error) {
	if len(portfolioIDs) == 0 {
		return &ContactPage{Contacts: []*model.Contact{}, Page: 1, PageSize: 10}, nil
	}
	query := s.db.WithContext(ctx).Model(&model.Contact{}).Where("portfolio_id IN ?", portfolioIDs)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize = normalizePage(page, pageSize)
	var contacts []*model.Contact
	err := query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ContactPage{
		Contacts:   contacts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s ContactRepoImpl) UpdateStatus(ctx context.Context, id uint64, status string) error {
	result := s.db.WithContext(ctx).Model(&model.Contact{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		err := s.db.WithContext(ctx).Model(&model.Contact{}).Where("id = ?", id).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (s ContactRepoImpl) DeleteContact(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s ContactRepoImpl) CountUnread(ctx context.Context, portfolioIDs []uint64) (int64, error) {
	if len(portfolioIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Contact{}).
		Where("portfolio_id IN ? AND status = ?", portfolioIDs, model.ContactStatusUnread).
		Count(&count).Error
	return count, err
}
