package repository

import (
	"Folioforge/internal/model"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// TemplateFilters 模板列表查询条件
type TemplateFilters struct {
	Status   string
	Tag      string
	Premium  *bool
	Search   string
	Page     int
	PageSize int
}

// TemplatePage 分页结果
type TemplatePage struct {
	Templates  []*model.Template
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type TemplateRepo interface {
	CreateTemplate(ctx context.Context, template *model.Template) error
	GetTemplate(ctx context.Context, id uint64) (*model.Template, error)
	FindTemplates(ctx context.Context, filters TemplateFilters) (*TemplatePage, error)
	UpdateTemplate(ctx context.Context, template *model.Template) error
	DeleteTemplate(ctx context.Context, id uint64) error
	DuplicateTemplate(ctx context.Context, id uint64) (*model.Template, error)
	IsTitleTaken(ctx context.Context, title string, excludeID uint64) (bool, error)
	CountPortfolioRefs(ctx context.Context, id uint64) (int64, error)
}

type TemplateRepoImpl struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepo {
	return &TemplateRepoImpl{
		db: db,
	}
}

func (s TemplateRepoImpl) CreateTemplate(ctx context.Context, template *model.Template) error {
	return s.db.WithContext(ctx).Create(template).Error
}

func (s TemplateRepoImpl) GetTemplate(ctx context.Context, id uint64) (*model.Template, error) {
	var template model.Template
	err := s.db.WithContext(ctx).First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (s TemplateRepoImpl) FindTemplates(ctx context.Context, filters TemplateFilters) (*TemplatePage, error) {
	query := s.db.WithContext(ctx).Model(&model.Template{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Tag != "" {
		// tags 以 JSON 数组落库，按引号包裹的整词匹配
		query = query.Where("tags LIKE ?", "%\""+filters.Tag+"\"%")
	}
	if filters.Premium != nil {
		query = query.Where("premium = ?", *filters.Premium)
	}
	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(filters.Page, filters.PageSize)
	var templates []*model.Template
	err := query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&templates).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &TemplatePage{
		Templates:  templates,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s TemplateRepoImpl) UpdateTemplate(ctx context.Context, template *model.Template) error {
	return s.db.WithContext(ctx).Save(template).Error
}

func (s TemplateRepoImpl) DeleteTemplate(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.Template{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DuplicateTemplate 复制模板，标题追加 (Copy) 后缀并从 2 开始递增探测，副本置为停用
func (s TemplateRepoImpl) DuplicateTemplate(ctx context.Context, id uint64) (*model.Template, error) {
	original, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	var copy model.Template
	if err = copier.CopyWithOption(&copy, original, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	copy.ID = 0
	copy.Status = model.TemplateStatusInactive
	copy.CreatedAt = time.Time{}
	copy.UpdatedAt = time.Time{}

	title := original.Title + " (Copy)"
	counter := 2
	for {
		taken, err := s.IsTitleTaken(ctx, title, 0)
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		title = fmt.Sprintf("%s (Copy %d)", original.Title, counter)
		counter++
	}
	copy.Title = title

	if err = s.db.WithContext(ctx).Create(&copy).Error; err != nil {
		return nil, err
	}
	return &copy, nil
}

func (s TemplateRepoImpl) IsTitleTaken(ctx context.Context, title string, excludeID uint64) (bool, error) {
	query := s.db.WithContext(ctx).Model(&model.Template{}).Where("title = ?", title)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountPortfolioRefs 统计仍引用该模板的作品集数量，用于删除前校验
func (s TemplateRepoImpl) CountPortfolioRefs(ctx context.Context, id uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Portfolio{}).
		Where("template_id = ?", id).
		Count(&count).Error
	return count, err
}
