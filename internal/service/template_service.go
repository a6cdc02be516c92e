package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/model"
	"Folioforge/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"gorm.io/gorm"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, req *dto.TemplateBaseDTO) (*model.Template, error)
	GetTemplate(ctx context.Context, id uint64) (*model.Template, error)
	GetTemplates(ctx context.Context, query *dto.TemplateQuery) (*dto.TemplateListDTO, error)
	UpdateTemplate(ctx context.Context, id uint64, req *dto.TemplateBaseDTO) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id uint64) error
	DuplicateTemplate(ctx context.Context, id uint64) (*model.Template, error)
}

type templateServiceImpl struct {
	templateRepo repository.TemplateRepo
}

func NewTemplateService(templateRepo repository.TemplateRepo) TemplateService {
	return &templateServiceImpl{
		templateRepo: templateRepo,
	}
}

func (s *templateServiceImpl) CreateTemplate(ctx context.Context, req *dto.TemplateBaseDTO) (*model.Template, error) {
	taken, err := s.templateRepo.IsTitleTaken(ctx, req.Title, 0)
	if err != nil {
		log.ErrorContext(ctx, "check template title error", "err", err)
		return nil, UnExpectedError
	}
	if taken {
		return nil, ErrTemplateTitleExist
	}

	template := &model.Template{}
	applyTemplateDTO(template, req)

	if err = s.templateRepo.CreateTemplate(ctx, template); err != nil {
		log.ErrorContext(ctx, "create template error", "err", err)
		return nil, UnExpectedError
	}
	return template, nil
}

func (s *templateServiceImpl) GetTemplate(ctx context.Context, id uint64) (*model.Template, error) {
	template, err := s.templateRepo.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		log.ErrorContext(ctx, "get template error", "id", id, "err", err)
		return nil, UnExpectedError
	}
	return template, nil
}

func (s *templateServiceImpl) GetTemplates(ctx context.Context, query *dto.TemplateQuery) (*dto.TemplateListDTO, error) {
	page, err := s.templateRepo.FindTemplates(ctx, repository.TemplateFilters{
		Status:   query.Status,
		Tag:      query.Tag,
		Premium:  query.Premium,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		log.ErrorContext(ctx, "list templates error", "err", err)
		return nil, UnExpectedError
	}

	return &dto.TemplateListDTO{
		Templates: page.Templates,
		Pagination: dto.PageDTO{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	}, nil
}

func (s *templateServiceImpl) UpdateTemplate(ctx context.Context, id uint64, req *dto.TemplateBaseDTO) (*model.Template, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.templateRepo.IsTitleTaken(ctx, req.Title, id)
	if err != nil {
		log.ErrorContext(ctx, "check template title error", "err", err)
		return nil, UnExpectedError
	}
	if taken {
		return nil, ErrTemplateTitleExist
	}

	applyTemplateDTO(template, req)
	if err = s.templateRepo.UpdateTemplate(ctx, template); err != nil {
		log.ErrorContext(ctx, "update template error", "id", id, "err", err)
		return nil, UnExpectedError
	}
	return template, nil
}

// DeleteTemplate 删除模板，仍被作品集引用时拒绝
func (s *templateServiceImpl) DeleteTemplate(ctx context.Context, id uint64) error {
	refs, err := s.templateRepo.CountPortfolioRefs(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "count template refs error", "id", id, "err", err)
		return UnExpectedError
	}
	if refs > 0 {
		return ErrTemplateInUse
	}

	if err = s.templateRepo.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		log.ErrorContext(ctx, "delete template error", "id", id, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *templateServiceImpl) DuplicateTemplate(ctx context.Context, id uint64) (*model.Template, error) {
	copy, err := s.templateRepo.DuplicateTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		log.ErrorContext(ctx, "duplicate template error", "id", id, "err", err)
		return nil, UnExpectedError
	}
	return copy, nil
}

func applyTemplateDTO(template *model.Template, req *dto.TemplateBaseDTO) {
	template.Title = req.Title
	template.Description = req.Description
	template.Tags = req.Tags
	template.Thumbnail = req.Thumbnail
	template.Font = req.Font
	template.PrimaryColor = req.PrimaryColor
	template.SecondaryColor = req.SecondaryColor
	template.Premium = req.Premium
	if req.Status != "" {
		template.Status = req.Status
	}
}
