package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/consts"
	"Folioforge/internal/pkg/es"
	"Folioforge/internal/pkg/mongo"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

type PortfolioService interface {
	CreatePortfolio(ctx context.Context, userID string, req *dto.PortfolioBaseDTO) (*dto.PortfolioDTO, error)
	GetPortfolio(ctx context.Context, userID string, id uint64) (*dto.PortfolioDTO, error)
	GetPortfolios(ctx context.Context, userID string, query *dto.PortfolioQuery) (*dto.PortfolioListDTO, error)
	GetPublicPortfolio(ctx context.Context, slug string) (*dto.PortfolioDTO, error)
	UpdatePortfolio(ctx context.Context, userID string, id uint64, req *dto.PortfolioBaseDTO) (*dto.PortfolioDTO, error)
	DeletePortfolio(ctx context.Context, userID string, id uint64) error
	DuplicatePortfolio(ctx context.Context, userID string, id uint64) (*dto.PortfolioDTO, error)
	PublishPortfolio(ctx context.Context, userID string, id uint64) error
	UnpublishPortfolio(ctx context.Context, userID string, id uint64) error
	ArchivePortfolio(ctx context.Context, userID string, id uint64) error
	CheckSlug(ctx context.Context, query *dto.SlugCheckDTO) (*dto.SlugAvailabilityDTO, error)
	SearchPublic(ctx context.Context, keyword string, page, pageSize int) (*dto.PublicSearchDTO, error)
}

type portfolioServiceImpl struct {
	portfolioRepo repository.PortfolioRepo
	templateRepo  repository.TemplateRepo
	analyticRepo  mongo.PortfolioAnalyticRepo
	esRepo        es.PortfolioRepo
	accountSvc    AccountService
}

func NewPortfolioService(
	portfolioRepo repository.PortfolioRepo,
	templateRepo repository.TemplateRepo,
	analyticRepo mongo.PortfolioAnalyticRepo,
	esRepo es.PortfolioRepo,
	accountSvc AccountService,
) PortfolioService {
	return &portfolioServiceImpl{
		portfolioRepo: portfolioRepo,
		templateRepo:  templateRepo,
		analyticRepo:  analyticRepo,
		esRepo:        esRepo,
		accountSvc:    accountSvc,
	}
}

func (s *portfolioServiceImpl) CreatePortfolio(ctx context.Context, userID string, req *dto.PortfolioBaseDTO) (*dto.PortfolioDTO, error) {
	if err := s.checkTemplateUsable(ctx, userID, req.TemplateID); err != nil {
		return nil, err
	}

	portfolio := &model.Portfolio{UserID: userID}
	if err := applyBaseDTO(portfolio, req); err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != "" {
		if err := s.checkSlugUsable(ctx, *req.Slug, 0); err != nil {
			return nil, err
		}
		portfolio.Slug = *req.Slug
	}

	if err := s.portfolioRepo.CreatePortfolio(ctx, portfolio); err != nil {
		log.ErrorContext(ctx, "create portfolio error", "err", err)
		return nil, UnExpectedError
	}
	return s.GetPortfolio(ctx, userID, portfolio.ID)
}

func (s *portfolioServiceImpl) GetPortfolio(ctx context.Context, userID string, id uint64) (*dto.PortfolioDTO, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "get portfolio error", "id", id, "err", err)
		return nil, UnExpectedError
	}

	// 浏览量以事件日志为准
	count, err := s.analyticRepo.CountViews(ctx, id, time.Time{})
	if err != nil {
		log.WarnContext(ctx, "count views fallback to snapshot", "id", id, "err", err)
	} else {
		portfolio.ViewCount = count
	}
	return &dto.PortfolioDTO{Portfolio: portfolio}, nil
}

func (s *portfolioServiceImpl) GetPortfolios(ctx context.Context, userID string, query *dto.PortfolioQuery) (*dto.PortfolioListDTO, error) {
	page, err := s.portfolioRepo.FindByUserID(ctx, userID, repository.PortfolioFilters{
		Status:     query.Status,
		TemplateID: query.TemplateID,
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		log.ErrorContext(ctx, "list portfolios error", "err", err)
		return nil, UnExpectedError
	}

	ids := make([]uint64, 0, len(page.Portfolios))
	for _, portfolio := range page.Portfolios {
		ids = append(ids, portfolio.ID)
	}
	counts, err := s.analyticRepo.CountViewsByPortfolios(ctx, ids)
	if err != nil {
		log.WarnContext(ctx, "count views fallback to snapshot", "err", err)
	} else {
		for _, portfolio := range page.Portfolios {
			portfolio.ViewCount = counts[portfolio.ID]
		}
	}

	return &dto.PortfolioListDTO{
		Portfolios: page.Portfolios,
		Pagination: dto.PageDTO{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	}, nil
}

// GetPublicPortfolio 公开页访问，只暴露已发布且公开的作品集
func (s *portfolioServiceImpl) GetPublicPortfolio(ctx context.Context, slug string) (*dto.PortfolioDTO, error) {
	portfolio, err := s.portfolioRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "find portfolio by slug error", "slug", slug, "err", err)
		return nil, UnExpectedError
	}
	if portfolio.Status != model.PortfolioStatusPublished || !portfolio.Settings.IsPublic {
		return nil, ErrPortfolioNotFound
	}

	count, err := s.analyticRepo.CountViews(ctx, portfolio.ID, time.Time{})
	if err == nil {
		portfolio.ViewCount = count
	}
	return &dto.PortfolioDTO{Portfolio: portfolio}, nil
}

func (s *portfolioServiceImpl) UpdatePortfolio(ctx context.Context, userID string, id uint64, req *dto.PortfolioBaseDTO) (*dto.PortfolioDTO, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "get portfolio error", "id", id, "err", err)
		return nil, UnExpectedError
	}

	if req.TemplateID != portfolio.TemplateID {
		if err = s.checkTemplateUsable(ctx, userID, req.TemplateID); err != nil {
			return nil, err
		}
	}

	if err = applyBaseDTO(portfolio, req); err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != "" && *req.Slug != portfolio.Slug {
		if err = s.checkSlugUsable(ctx, *req.Slug, id); err != nil {
			return nil, err
		}
		portfolio.Slug = *req.Slug
	}

	if err = s.portfolioRepo.UpdatePortfolio(ctx, portfolio); err != nil {
		log.ErrorContext(ctx, "update portfolio error", "id", id, "err", err)
		return nil, UnExpectedError
	}

	if portfolio.Status == model.PortfolioStatusPublished && portfolio.Settings.IsPublic {
		s.indexPortfolio(ctx, portfolio)
	} else {
		s.deleteFromIndex(ctx, portfolio.ID)
	}

	return s.GetPortfolio(ctx, userID, id)
}

func (s *portfolioServiceImpl) DeletePortfolio(ctx context.Context, userID string, id uint64) error {
	if err := s.portfolioRepo.DeletePortfolio(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "delete portfolio error", "id", id, "err", err)
		return UnExpectedError
	}

	if err := s.analyticRepo.DeleteByPortfolio(ctx, id); err != nil {
		log.WarnContext(ctx, "delete portfolio analytics error", "id", id, "err", err)
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *portfolioServiceImpl) DuplicatePortfolio(ctx context.Context, userID string, id uint64) (*dto.PortfolioDTO, error) {
	copy, err := s.portfolioRepo.DuplicatePortfolio(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "duplicate portfolio error", "id", id, "err", err)
		return nil, UnExpectedError
	}
	return s.GetPortfolio(ctx, userID, copy.ID)
}

// PublishPortfolio 发布作品集，免费套餐限制同时发布数量
func (s *portfolioServiceImpl) PublishPortfolio(ctx context.Context, userID string, id uint64) error {
	portfolio, err := s.portfolioRepo.GetPortfolio(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "get portfolio error", "id", id, "err", err)
		return UnExpectedError
	}

	if portfolio.Status != model.PortfolioStatusPublished {
		capabilities, err := s.accountSvc.GetCapabilities(ctx, userID)
		if err != nil {
			return err
		}
		if capabilities.Plan != model.PlanPremium {
			published, err := s.portfolioRepo.CountPublished(ctx, userID)
			if err != nil {
				log.ErrorContext(ctx, "count published error", "err", err)
				return UnExpectedError
			}
			if published >= consts.FreePlanPublishLimit {
				return ErrPublishLimitReached
			}
		}
	}

	if err = s.updateStatus(ctx, userID, id, model.PortfolioStatusPublished); err != nil {
		return err
	}

	portfolio.Status = model.PortfolioStatusPublished
	if portfolio.Settings.IsPublic {
		s.indexPortfolio(ctx, portfolio)
	}
	return nil
}

func (s *portfolioServiceImpl) UnpublishPortfolio(ctx context.Context, userID string, id uint64) error {
	if err := s.updateStatus(ctx, userID, id, model.PortfolioStatusDraft); err != nil {
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// ArchivePortfolio 归档，对已归档的作品集重复调用是幂等的
func (s *portfolioServiceImpl) ArchivePortfolio(ctx context.Context, userID string, id uint64) error {
	if err := s.updateStatus(ctx, userID, id, model.PortfolioStatusArchived); err != nil {
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *portfolioServiceImpl) CheckSlug(ctx context.Context, query *dto.SlugCheckDTO) (*dto.SlugAvailabilityDTO, error) {
	result := &dto.SlugAvailabilityDTO{Slug: query.Slug}
	if !util.ValidateSlug(query.Slug) {
		result.Reason = ErrSlugInvalid.Error()
		return result, nil
	}

	taken, err := s.portfolioRepo.IsSlugTaken(ctx, query.Slug, query.ExcludeID)
	if err != nil {
		log.ErrorContext(ctx, "check slug error", "slug", query.Slug, "err", err)
		return nil, UnExpectedError
	}
	if taken {
		result.Reason = ErrSlugTaken.Error()
		return result, nil
	}

	result.Available = true
	return result, nil
}

func (s *portfolioServiceImpl) SearchPublic(ctx context.Context, keyword string, page, pageSize int) (*dto.PublicSearchDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 12
	}

	docs, err := s.esRepo.SearchPortfolios(ctx, keyword, (page-1)*pageSize, pageSize)
	if err != nil {
		log.ErrorContext(ctx, "search portfolios error", "keyword", keyword, "err", err)
		return nil, UnExpectedError
	}

	results := make([]*dto.PortfolioCardDTO, 0, len(docs))
	for _, doc := range docs {
		results = append(results, &dto.PortfolioCardDTO{
			ID:          doc.ID,
			Slug:        doc.Slug,
			Name:        doc.Name,
			ProfileName: doc.ProfileName,
			Title:       doc.Title,
			Bio:         doc.Bio,
			Location:    doc.Location,
			Skills:      doc.Skills,
			ViewCount:   doc.ViewCount,
		})
	}
	return &dto.PublicSearchDTO{Results: results, Page: page, PageSize: pageSize}, nil
}

func (s *portfolioServiceImpl) updateStatus(ctx context.Context, userID string, id uint64, status string) error {
	if err := s.portfolioRepo.UpdateStatus(ctx, userID, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "update portfolio status error", "id", id, "status", status, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *portfolioServiceImpl) checkTemplateUsable(ctx context.Context, userID string, templateID uint64) error {
	template, err := s.templateRepo.GetTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		log.ErrorContext(ctx, "get template error", "id", templateID, "err", err)
		return UnExpectedError
	}
	if template.Status != model.TemplateStatusActive {
		return ErrTemplateNotFound
	}
	if template.Premium {
		capabilities, err := s.accountSvc.GetCapabilities(ctx, userID)
		if err != nil {
			return err
		}
		if capabilities.Plan != model.PlanPremium {
			return ErrTemplatePremiumOnly
		}
	}
	return nil
}

func (s *portfolioServiceImpl) checkSlugUsable(ctx context.Context, slug string, excludeID uint64) error {
	if !util.ValidateSlug(slug) {
		return ErrSlugInvalid
	}
	taken, err := s.portfolioRepo.IsSlugTaken(ctx, slug, excludeID)
	if err != nil {
		log.ErrorContext(ctx, "check slug error", "slug", slug, "err", err)
		return UnExpectedError
	}
	if taken {
		return ErrSlugTaken
	}
	return nil
}

func (s *portfolioServiceImpl) indexPortfolio(ctx context.Context, portfolio *model.Portfolio) {
	if s.esRepo == nil {
		return
	}
	skills := make([]string, 0, len(portfolio.Skills))
	for _, skill := range portfolio.Skills {
		skills = append(skills, skill.Name)
	}
	location := ""
	if portfolio.Profile.Location != nil {
		location = *portfolio.Profile.Location
	}
	doc := &es.PortfolioES{
		ID:          portfolio.ID,
		UserID:      portfolio.UserID,
		Slug:        portfolio.Slug,
		Name:        portfolio.Name,
		ProfileName: portfolio.Profile.Name,
		Title:       portfolio.Profile.Title,
		Bio:         portfolio.Profile.Bio,
		Location:    location,
		Skills:      skills,
		TemplateID:  portfolio.TemplateID,
		ViewCount:   portfolio.ViewCount,
		PublishedAt: time.Now(),
		UpdatedAt:   portfolio.UpdatedAt,
	}
	if err := s.esRepo.IndexPortfolio(ctx, doc); err != nil {
		log.ErrorContext(ctx, "index portfolio error", "id", portfolio.ID, "err", err)
	}
}

func (s *portfolioServiceImpl) deleteFromIndex(ctx context.Context, id uint64) {
	if s.esRepo == nil {
		return
	}
	if err := s.esRepo.DeletePortfolio(ctx, id); err != nil {
		log.ErrorContext(ctx, "delete portfolio index error", "id", id, "err", err)
	}
}

// applyBaseDTO 将请求体合并到模型，子实体整体替换
func applyBaseDTO(portfolio *model.Portfolio, req *dto.PortfolioBaseDTO) error {
	portfolio.Name = req.Name
	portfolio.TemplateID = req.TemplateID
	portfolio.Profile = model.Profile{
		Name:         req.Profile.Name,
		Title:        req.Profile.Title,
		Bio:          req.Profile.Bio,
		Location:     req.Profile.Location,
		Email:        req.Profile.Email,
		Phone:        req.Profile.Phone,
		Website:      req.Profile.Website,
		ProfilePhoto: req.Profile.ProfilePhoto,
	}

	settings := model.PortfolioSettings{AllowComments: true, ShowContactInfo: true}
	if req.Settings != nil {
		if req.Settings.IsPublic != nil {
			settings.IsPublic = *req.Settings.IsPublic
		}
		if req.Settings.AllowComments != nil {
			settings.AllowComments = *req.Settings.AllowComments
		}
		if req.Settings.ShowContactInfo != nil {
			settings.ShowContactInfo = *req.Settings.ShowContactInfo
		}
		settings.CustomDomain = req.Settings.CustomDomain
		settings.SeoTitle = req.Settings.SeoTitle
		settings.SeoDescription = req.Settings.SeoDescription
	}
	portfolio.Settings = settings

	portfolio.SocialLinks = make([]model.SocialLink, 0, len(req.Links))
	for _, link := range req.Links {
		portfolio.SocialLinks = append(portfolio.SocialLinks, model.SocialLink{
			Platform: link.Platform,
			URL:      link.URL,
			Username: link.Username,
		})
	}

	portfolio.Skills = make([]model.Skill, 0, len(req.Skills))
	for _, skill := range req.Skills {
		level := skill.Level
		if level == 0 {
			level = 1
		}
		portfolio.Skills = append(portfolio.Skills, model.Skill{
			Name:        skill.Name,
			Category:    skill.Category,
			Proficiency: skill.Proficiency,
			Level:       level,
		})
	}

	portfolio.Certifications = make([]model.Certification, 0, len(req.Certs))
	for _, cert := range req.Certs {
		issueDate, err := parseDatePtr(cert.IssueDate)
		if err != nil {
			return ErrParamInvalid
		}
		expiryDate, err := parseDatePtr(cert.ExpiryDate)
		if err != nil {
			return ErrParamInvalid
		}
		portfolio.Certifications = append(portfolio.Certifications, model.Certification{
			Name:          cert.Name,
			Provider:      cert.Provider,
			IssueDate:     issueDate,
			ExpiryDate:    expiryDate,
			CredentialID:  cert.CredentialID,
			CredentialURL: cert.CredentialURL,
		})
	}

	portfolio.Experiences = make([]model.Experience, 0, len(req.Experience))
	for _, exp := range req.Experience {
		startDate, err := time.Parse("2006-01-02", exp.StartDate)
		if err != nil {
			return ErrParamInvalid
		}
		endDate, err := parseDatePtr(exp.EndDate)
		if err != nil {
			return ErrParamInvalid
		}
		portfolio.Experiences = append(portfolio.Experiences, model.Experience{
			Title:        exp.Title,
			Company:      exp.Company,
			Location:     exp.Location,
			StartDate:    startDate,
			EndDate:      endDate,
			IsCurrent:    exp.IsCurrent,
			Description:  exp.Description,
			Achievements: exp.Achievements,
			Technologies: exp.Technologies,
		})
	}

	portfolio.Projects = make([]model.Project, 0, len(req.Projects))
	for _, project := range req.Projects {
		completedDate, err := parseDatePtr(project.CompletedDate)
		if err != nil {
			return ErrParamInvalid
		}
		thumbnail := model.DefaultProjectThumbnail
		if project.Thumbnail != nil && *project.Thumbnail != "" {
			thumbnail = *project.Thumbnail
		}
		portfolio.Projects = append(portfolio.Projects, model.Project{
			Title:         project.Title,
			Description:   project.Description,
			Thumbnail:     thumbnail,
			Technologies:  project.Technologies,
			DemoURL:       project.DemoURL,
			GithubURL:     project.GithubURL,
			IsFeatured:    project.IsFeatured,
			CompletedDate: completedDate,
		})
	}

	return nil
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
