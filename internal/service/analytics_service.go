package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/consts"
	"Folioforge/internal/pkg/mongo"
	"Folioforge/internal/pkg/redis"
	"Folioforge/internal/repository"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	log "log/slog"
	"sort"
	"time"

	"gorm.io/gorm"
)

const topReferrerLimit = 5

// ViewRecord 一次待记录的访问
type ViewRecord struct {
	PortfolioID uint64
	IPAddress   string
	UserAgent   string
	Referrer    string
	OccurredAt  time.Time
}

type AnalyticsService interface {
	RecordView(ctx context.Context, record ViewRecord) error
	TrackView(ctx context.Context, slug, ip, userAgent, referrer string) error
	GetSummary(ctx context.Context, userID string, portfolioID uint64, query *dto.AnalyticsQuery) (*dto.AnalyticsSummaryDTO, error)
	GetOverview(ctx context.Context, userID string, query *dto.AnalyticsQuery) (*dto.AnalyticsOverviewDTO, error)
}

type analyticsServiceImpl struct {
	analyticRepo  mongo.PortfolioAnalyticRepo
	portfolioRepo repository.PortfolioRepo
}

func NewAnalyticsService(analyticRepo mongo.PortfolioAnalyticRepo, portfolioRepo repository.PortfolioRepo) AnalyticsService {
	return &analyticsServiceImpl{
		analyticRepo:  analyticRepo,
		portfolioRepo: portfolioRepo,
	}
}

// RecordView 追加访问事件并把作品集标记为脏，等待定时任务回写快照
func (s *analyticsServiceImpl) RecordView(ctx context.Context, record ViewRecord) error {
	view := &mongo.PortfolioAnalytic{
		PortfolioID: record.PortfolioID,
		ViewerHash:  ViewerHash(record.IPAddress, record.UserAgent),
		IPAddress:   record.IPAddress,
		UserAgent:   record.UserAgent,
		Referrer:    record.Referrer,
		ViewedAt:    record.OccurredAt,
	}
	if err := s.analyticRepo.AddView(ctx, view); err != nil {
		log.ErrorContext(ctx, "add view error", "portfolio_id", record.PortfolioID, "err", err)
		return err
	}

	if err := redis.SAdd(ctx, consts.PortfolioViewDirtyKey, record.PortfolioID); err != nil {
		log.WarnContext(ctx, "mark view dirty error", "portfolio_id", record.PortfolioID, "err", err)
	}
	return nil
}

// TrackView 公开页上报，只有已发布且公开的作品集才计数
func (s *analyticsServiceImpl) TrackView(ctx context.Context, slug, ip, userAgent, referrer string) error {
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

	return s.RecordView(ctx, ViewRecord{
		PortfolioID: portfolio.ID,
		IPAddress:   ip,
		UserAgent:   userAgent,
		Referrer:    referrer,
		OccurredAt:  time.Now(),
	})
}

func (s *analyticsServiceImpl) GetSummary(ctx context.Context, userID string, portfolioID uint64, query *dto.AnalyticsQuery) (*dto.AnalyticsSummaryDTO, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, userID, portfolioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		log.ErrorContext(ctx, "get portfolio error", "id", portfolioID, "err", err)
		return nil, UnExpectedError
	}

	since := rangeStart(query.Range, time.Now())

	views, err := s.analyticRepo.FindViews(ctx, portfolioID, since)
	if err != nil {
		log.ErrorContext(ctx, "find views error", "id", portfolioID, "err", err)
		return nil, UnExpectedError
	}
	identities, err := s.analyticRepo.CountViewerIdentities(ctx, portfolioID, since)
	if err != nil {
		log.ErrorContext(ctx, "count viewer identities error", "id", portfolioID, "err", err)
		return nil, UnExpectedError
	}

	interval := query.Interval
	if interval == "" {
		interval = "daily"
	}

	return &dto.AnalyticsSummaryDTO{
		PortfolioID:      portfolioID,
		TotalViews:       int64(len(views)),
		ViewerIdentities: identities,
		ViewsByInterval:  bucketViews(views, interval),
		TopReferrers:     topReferrers(views, topReferrerLimit),
	}, nil
}

// GetOverview 账号名下全部作品集的访问总览，没有作品集时返回零值结构
func (s *analyticsServiceImpl) GetOverview(ctx context.Context, userID string, query *dto.AnalyticsQuery) (*dto.AnalyticsOverviewDTO, error) {
	portfolioIDs, err := s.portfolioRepo.FindIDsByUserID(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "find portfolio ids error", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}

	overview := &dto.AnalyticsOverviewDTO{
		ViewsByInterval: []dto.IntervalBucketDTO{},
		TopReferrers:    []dto.ReferrerCountDTO{},
		Portfolios:      []dto.PortfolioViewsDTO{},
	}
	if len(portfolioIDs) == 0 {
		return overview, nil
	}

	since := rangeStart(query.Range, time.Now())
	interval := query.Interval
	if interval == "" {
		interval = "daily"
	}

	views, err := s.analyticRepo.FindViewsByPortfolios(ctx, portfolioIDs, since)
	if err != nil {
		log.ErrorContext(ctx, "find views error", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}
	identities, err := s.analyticRepo.CountViewerIdentitiesByPortfolios(ctx, portfolioIDs, since)
	if err != nil {
		log.WarnContext(ctx, "count viewer identities error", "user_id", userID, "err", err)
	}
	perPortfolio, err := s.analyticRepo.CountViewsByPortfolios(ctx, portfolioIDs)
	if err != nil {
		log.WarnContext(ctx, "count views by portfolio error", "user_id", userID, "err", err)
	}

	overview.TotalViews = int64(len(views))
	overview.ViewerIdentities = identities
	overview.ViewsByInterval = bucketViews(views, interval)
	overview.TopReferrers = topReferrers(views, topReferrerLimit)
	for _, id := range portfolioIDs {
		overview.Portfolios = append(overview.Portfolios, dto.PortfolioViewsDTO{
			PortfolioID: id,
			Views:       perPortfolio[id],
		})
	}
	return overview, nil
}

// ViewerHash 由 IP 与 UA 派生访客身份摘要
func ViewerHash(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(sum[:16])
}

func rangeStart(viewRange string, now time.Time) time.Time {
	switch viewRange {
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	default:
		return time.Time{}
	}
}

// bucketViews 在内存中按区间聚合访问事件，跨月/跨周的事件落入各自的桶
func bucketViews(views []*mongo.PortfolioAnalytic, interval string) []dto.IntervalBucketDTO {
	counts := make(map[string]int64)
	for _, view := range views {
		counts[bucketKey(view.ViewedAt, interval)]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]dto.IntervalBucketDTO, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, dto.IntervalBucketDTO{Bucket: key, Views: counts[key]})
	}
	return buckets
}

func bucketKey(at time.Time, interval string) string {
	at = at.UTC()
	switch interval {
	case "weekly":
		// 以周一为一周的起始
		offset := (int(at.Weekday()) + 6) % 7
		return at.AddDate(0, 0, -offset).Format("2006-01-02")
	case "monthly":
		return at.Format("2006-01")
	case "yearly":
		return at.Format("2006")
	default:
		return at.Format("2006-01-02")
	}
}

func topReferrers(views []*mongo.PortfolioAnalytic, limit int) []dto.ReferrerCountDTO {
	counts := make(map[string]int64)
	for _, view := range views {
		if view.Referrer == "" {
			continue
		}
		counts[view.Referrer]++
	}

	referrers := make([]dto.ReferrerCountDTO, 0, len(counts))
	for referrer, views := range counts {
		referrers = append(referrers, dto.ReferrerCountDTO{Referrer: referrer, Views: views})
	}
	sort.Slice(referrers, func(i, j int) bool {
		if referrers[i].Views == referrers[j].Views {
			return referrers[i].Referrer < referrers[j].Referrer
		}
		return referrers[i].Views > referrers[j].Views
	})

	if len(referrers) > limit {
		referrers = referrers[:limit]
	}
	return referrers
}
