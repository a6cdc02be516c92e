package repository

import (
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/util"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// PortfolioFilters 作品集列表查询条件
type PortfolioFilters struct {
	Status     string
	TemplateID uint64
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// PortfolioPage 分页结果
type PortfolioPage struct {
	Portfolios []*model.Portfolio
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type PortfolioRepo interface {
	CreatePortfolio(ctx context.Context, portfolio *model.Portfolio) error
	GetPortfolio(ctx context.Context, userID string, id uint64) (*model.Portfolio, error)
	FindBySlug(ctx context.Context, slug string) (*model.Portfolio, error)
	FindByUserID(ctx context.Context, userID string, filters PortfolioFilters) (*PortfolioPage, error)
	FindPublic(ctx context.Context, page, pageSize int) (*PortfolioPage, error)
	FindIDsByUserID(ctx context.Context, userID string) ([]uint64, error)
	UpdatePortfolio(ctx context.Context, portfolio *model.Portfolio) error
	UpdateStatus(ctx context.Context, userID string, id uint64, status string) error
	DeletePortfolio(ctx context.Context, userID string, id uint64) error
	DuplicatePortfolio(ctx context.Context, userID string, id uint64) (*model.Portfolio, error)
	GenerateUniqueSlug(ctx context.Context, baseName string, excludeID uint64) (string, error)
	IsSlugTaken(ctx context.Context, slug string, excludeID uint64) (bool, error)
	CountPublished(ctx context.Context, userID string) (int64, error)
	SetViewCount(ctx context.Context, id uint64, count int64) error
}

type PortfolioRepoImpl struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepo {
	return &PortfolioRepoImpl{
		db: db,
	}
}

// portfolioAssociations 子实体的关联名，更新时统一替换
var portfolioAssociations = []string{"SocialLinks", "Skills", "Certifications", "Experiences", "Projects"}

func (s PortfolioRepoImpl) CreatePortfolio(ctx context.Context, portfolio *model.Portfolio) error {
	if portfolio.Slug == "" {
		slug, err := s.GenerateUniqueSlug(ctx, portfolio.Profile.Name, 0)
		if err != nil {
			return err
		}
		portfolio.Slug = slug
	}
	portfolio.Status = model.PortfolioStatusDraft
	portfolio.ViewCount = 0
	return s.db.WithContext(ctx).Omit("Template").Create(portfolio).Error
}

func (s PortfolioRepoImpl) GetPortfolio(ctx context.Context, userID string, id uint64) (*model.Portfolio, error) {
	var portfolio model.Portfolio
	err := s.preloadAll(s.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&portfolio).Error
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (s PortfolioRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Portfolio, error) {
	var portfolio model.Portfolio
	err := s.preloadAll(s.db.WithContext(ctx)).
		Where("slug = ?", slug).
		First(&portfolio).Error
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (s PortfolioRepoImpl) FindByUserID(ctx context.Context, userID string, filters PortfolioFilters) (*PortfolioPage, error) {
	query := s.db.WithContext(ctx).Model(&model.Portfolio{}).Where("user_id = ?", userID)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.TemplateID != 0 {
		query = query.Where("template_id = ?", filters.TemplateID)
	}
	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(profile_name) LIKE ? OR LOWER(profile_title) LIKE ? OR LOWER(profile_bio) LIKE ? OR LOWER(slug) LIKE ?",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(filters.Page, filters.PageSize)
	order := portfolioOrder(filters.SortBy, filters.SortOrder)

	var portfolios []*model.Portfolio
	err := s.preloadAll(query.Order(order).Offset((page - 1) * pageSize).Limit(pageSize)).
		Find(&portfolios).Error
	if err != nil {
		return nil, err
	}
	return newPortfolioPage(portfolios, total, page, pageSize), nil
}

func (s PortfolioRepoImpl) FindPublic(ctx context.Context, page, pageSize int) (*PortfolioPage, error) {
	query := s.db.WithContext(ctx).Model(&model.Portfolio{}).
		Where("status = ? AND settings_is_public = ?", model.PortfolioStatusPublished, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize = normalizePage(page, pageSize)
	var portfolios []*model.Portfolio
	err := s.preloadAll(query.Order("updated_at DESC").Offset((page - 1) * pageSize).Limit(pageSize)).
		Find(&portfolios).Error
	if err != nil {
		return nil, err
	}
	return newPortfolioPage(portfolios, total, page, pageSize), nil
}

func (s PortfolioRepoImpl) FindIDsByUserID(ctx context.Context, userID string) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Portfolio{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdatePortfolio 全量保存主表并重建子实体，调用方需传入已合并好的完整模型
func (s PortfolioRepoImpl) UpdatePortfolio(ctx context.Context, portfolio *model.Portfolio) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&model.SocialLink{}, &model.Skill{}, &model.Certification{},
			&model.Experience{}, &model.Project{},
		} {
			if err := tx.Delete(child, "portfolio_id = ?", portfolio.ID).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Template").Save(portfolio).Error
	})
}

func (s PortfolioRepoImpl) UpdateStatus(ctx context.Context, userID string, id uint64, status string) error {
	result := s.db.WithContext(ctx).Model(&model.Portfolio{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL 在值未变化时 affected rows 为 0，需要再确认一次归属
		var count int64
		err := s.db.WithContext(ctx).Model(&model.Portfolio{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (s PortfolioRepoImpl) DeletePortfolio(ctx context.Context, userID string, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var portfolio model.Portfolio
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&portfolio).Error
		if err != nil {
			return err
		}
		for _, child := range []interface{}{
			&model.SocialLink{}, &model.Skill{}, &model.Certification{},
			&model.Experience{}, &model.Project{},
		} {
			if err = tx.Delete(child, "portfolio_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err = tx.Delete(&model.Contact{}, "portfolio_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Portfolio{}, id).Error
	})
}

// DuplicatePortfolio 复制一份作品集，新副本重置为草稿并补齐历史数据中缺失的字段
func (s PortfolioRepoImpl) DuplicatePortfolio(ctx context.Context, userID string, id uint64) (*model.Portfolio, error) {
	original, err := s.GetPortfolio(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var copy model.Portfolio
	if err = copier.CopyWithOption(&copy, original, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	copy.ID = 0
	copy.Name = original.Name + " COPY"
	copy.Status = model.PortfolioStatusDraft
	copy.ViewCount = 0
	copy.Template = model.Template{}
	copy.CreatedAt = time.Time{}
	copy.UpdatedAt = time.Time{}

	slug, err := s.GenerateUniqueSlug(ctx, original.Profile.Name+"-copy", 0)
	if err != nil {
		return nil, err
	}
	copy.Slug = slug

	normalizeDuplicate(&copy)

	if err = s.db.WithContext(ctx).Omit("Template").Create(&copy).Error; err != nil {
		return nil, err
	}
	return &copy, nil
}

// normalizeDuplicate 补齐旧数据里可能为空的必填字段，避免副本落库失败
func normalizeDuplicate(copy *model.Portfolio) {
	now := time.Now()
	for i := range copy.SocialLinks {
		copy.SocialLinks[i].ID = 0
		copy.SocialLinks[i].PortfolioID = 0
	}
	for i := range copy.Skills {
		copy.Skills[i].ID = 0
		copy.Skills[i].PortfolioID = 0
		if copy.Skills[i].Proficiency == nil || *copy.Skills[i].Proficiency == "" {
			copy.Skills[i].Proficiency = util.PtrString(model.ProficiencyBeginner)
		}
	}
	for i := range copy.Certifications {
		copy.Certifications[i].ID = 0
		copy.Certifications[i].PortfolioID = 0
		if copy.Certifications[i].IssueDate == nil {
			copy.Certifications[i].IssueDate = util.PtrTime(now)
		}
	}
	for i := range copy.Experiences {
		copy.Experiences[i].ID = 0
		copy.Experiences[i].PortfolioID = 0
		if copy.Experiences[i].StartDate.IsZero() {
			copy.Experiences[i].StartDate = now
		}
	}
	for i := range copy.Projects {
		copy.Projects[i].ID = 0
		copy.Projects[i].PortfolioID = 0
		if copy.Projects[i].Thumbnail == "" {
			copy.Projects[i].Thumbnail = model.DefaultProjectThumbnail
		}
		if copy.Projects[i].CompletedDate == nil {
			copy.Projects[i].CompletedDate = util.PtrTime(now)
		}
	}
}

// GenerateUniqueSlug 由展示名派生 slug，冲突时追加递增数字后缀探测
func (s PortfolioRepoImpl) GenerateUniqueSlug(ctx context.Context, baseName string, excludeID uint64) (string, error) {
	base := util.GenerateSlug(baseName)
	// 过短的展示名派生不出合法 slug，退回通用前缀
	if len(base) < util.SlugMinLength {
		base = "portfolio"
	}
	slug := base
	counter := 1
	for {
		taken, err := s.IsSlugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func (s PortfolioRepoImpl) IsSlugTaken(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	query := s.db.WithContext(ctx).Model(&model.Portfolio{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s PortfolioRepoImpl) CountPublished(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Portfolio{}).
		Where("user_id = ? AND status = ?", userID, model.PortfolioStatusPublished).
		Count(&count).Error
	return count, err
}

func (s PortfolioRepoImpl) SetViewCount(ctx context.Context, id uint64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Portfolio{}).
		Where("id = ?", id).
		Update("view_count", count).Error
}

func (s PortfolioRepoImpl) preloadAll(db *gorm.DB) *gorm.DB {
	return db.Preload("Template").
		Preload("SocialLinks").
		Preload("Skills").
		Preload("Certifications").
		Preload("Experiences").
		Preload("Projects")
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func portfolioOrder(sortBy, sortOrder string) string {
	column := "updated_at"
	switch sortBy {
	case "createdAt":
		column = "created_at"
	case "name":
		column = "name"
	case "viewCount":
		column = "view_count"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

func newPortfolioPage(portfolios []*model.Portfolio, total int64, page, pageSize int) *PortfolioPage {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &PortfolioPage{
		Portfolios: portfolios,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
