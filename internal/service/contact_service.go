package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/ratelimit"
	"Folioforge/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"gorm.io/gorm"
)

type ContactService interface {
	SubmitContact(ctx context.Context, slug, ip string, req *dto.ContactSubmitDTO) error
	GetContacts(ctx context.Context, userID string, query *dto.ContactQuery) (*dto.ContactListDTO, error)
	UpdateContactStatus(ctx context.Context, userID string, id uint64, status string) error
	DeleteContact(ctx context.Context, userID string, id uint64) error
}

type contactServiceImpl struct {
	contactRepo   repository.ContactRepo
	portfolioRepo repository.PortfolioRepo
	limiter       *ratelimit.FixedWindowLimiter
}

func NewContactService(
	contactRepo repository.ContactRepo,
	portfolioRepo repository.PortfolioRepo,
	limiter *ratelimit.FixedWindowLimiter,
) ContactService {
	return &contactServiceImpl{
		contactRepo:   contactRepo,
		portfolioRepo: portfolioRepo,
		limiter:       limiter,
	}
}

// SubmitContact 公开页留言：限流 + 同邮箱去重
func (s *contactServiceImpl) SubmitContact(ctx context.Context, slug, ip string, req *dto.ContactSubmitDTO) error {
	if !s.limiter.Allow("contact:" + ip) {
		return ErrRateLimited
	}

	portfolio, err := s.portfolioRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "find portfolio by slug error", "slug", slug, "err", err)
		return UnExpectedError
	}
	if portfolio.Status != model.PortfolioStatusPublished || !portfolio.Settings.IsPublic {
		return ErrPortfolioNotFound
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.contactRepo.ExistsByPortfolioEmail(ctx, portfolio.ID, email)
	if err != nil {
		log.ErrorContext(ctx, "check contact duplicate error", "err", err)
		return UnExpectedError
	}
	if exists {
		return ErrContactDuplicate
	}

	contact := &model.Contact{
		PortfolioID: portfolio.ID,
		Name:        req.Name,
		Email:       email,
		Subject:     req.Subject,
		Message:     req.Message,
	}
	if err = s.contactRepo.SaveContact(ctx, contact); err != nil {
		// 并发提交时兜底唯一索引
		log.WarnContext(ctx, "save contact error", "portfolio_id", portfolio.ID, "err", err)
		return ErrContactDuplicate
	}
	return nil
}

func (s *contactServiceImpl) GetContacts(ctx context.Context, userID string, query *dto.ContactQuery) (*dto.ContactListDTO, error) {
	portfolioIDs, err := s.resolvePortfolioIDs(ctx, userID, query.PortfolioID)
	if err != nil {
		return nil, err
	}

	page, err := s.contactRepo.ListByPortfolios(ctx, portfolioIDs, query.Status, query.Page, query.PageSize)
	if err != nil {
		log.ErrorContext(ctx, "list contacts error", "err", err)
		return nil, UnExpectedError
	}
	unread, err := s.contactRepo.CountUnread(ctx, portfolioIDs)
	if err != nil {
		log.WarnContext(ctx, "count unread contacts error", "err", err)
	}

	return &dto.ContactListDTO{
		Contacts: page.Contacts,
		Unread:   unread,
		Pagination: dto.PageDTO{
			Total:      page.Total,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	}, nil
}

func (s *contactServiceImpl) UpdateContactStatus(ctx context.Context, userID string, id uint64, status string) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}
	if err := s.contactRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		log.ErrorContext(ctx, "update contact status error", "id", id, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *contactServiceImpl) DeleteContact(ctx context.Context, userID string, id uint64) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}
	if err := s.contactRepo.DeleteContact(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		log.ErrorContext(ctx, "delete contact error", "id", id, "err", err)
		return UnExpectedError
	}
	return nil
}

// checkOwnership 留言必须属于当前用户的某个作品集
func (s *contactServiceImpl) checkOwnership(ctx context.Context, userID string, contactID uint64) error {
	contact, err := s.contactRepo.GetContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		log.ErrorContext(ctx, "get contact error", "id", contactID, "err", err)
		return UnExpectedError
	}

	ids, err := s.portfolioRepo.FindIDsByUserID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "list portfolio ids error", "err", err)
		return UnExpectedError
	}
	for _, id := range ids {
		if id == contact.PortfolioID {
			return nil
		}
	}
	return ErrContactNotFound
}

func (s *contactServiceImpl) resolvePortfolioIDs(ctx context.Context, userID string, portfolioID uint64) ([]uint64, error) {
	ids, err := s.portfolioRepo.FindIDsByUserID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "list portfolio ids error", "err", err)
		return nil, UnExpectedError
	}

	if portfolioID == 0 {
		return ids, nil
	}
	for _, id := range ids {
		if id == portfolioID {
			return []uint64{portfolioID}, nil
		}
	}
	return nil, ErrPortfolioNotFound
}
