package job

import (
	"Folioforge/internal/pkg/consts"
	"Folioforge/internal/pkg/es"
	"Folioforge/internal/pkg/logger"
	"Folioforge/internal/pkg/mongo"
	"Folioforge/internal/pkg/redis"
	"Folioforge/internal/pkg/util"
	"Folioforge/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ViewCountJob 把事件日志中的浏览计数回写到 MySQL 快照与检索索引。
// 事件日志是计数的权威来源，portfolios.view_count 只是缓存的衍生值。
type ViewCountJob struct {
	portfolioRepo repository.PortfolioRepo
	analyticRepo  mongo.PortfolioAnalyticRepo
	esRepo        es.PortfolioRepo
}

func NewViewCountJob(
	portfolioRepo repository.PortfolioRepo,
	analyticRepo mongo.PortfolioAnalyticRepo,
	esRepo es.PortfolioRepo,
) *ViewCountJob {
	return &ViewCountJob{
		portfolioRepo: portfolioRepo,
		analyticRepo:  analyticRepo,
		esRepo:        esRepo,
	}
}

func (s *ViewCountJob) Run() {
	traceID := "job-view-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.PortfolioViewDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.PortfolioViewDirtyKey, processingKey)
	if err != nil {
		// 脏集合为空时 Rename 报错，无事可做
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get view dirty set error", "err", err)
		return
	}

	portfolioIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert view set to int slice error", "err", err)
		return
	}

	synced := 0
	for _, pid := range portfolioIDs {
		total, err := s.analyticRepo.CountViews(ctx, pid, time.Time{})
		if err != nil {
			log.ErrorContext(ctx, "count portfolio views error", "pid", pid, "err", err)
			continue
		}

		if err = s.portfolioRepo.SetViewCount(ctx, pid, total); err != nil {
			log.ErrorContext(ctx, "sync portfolio view count error", "pid", pid, "err", err)
			continue
		}

		if s.esRepo != nil {
			if err = s.esRepo.UpdateViewCount(ctx, pid, total); err != nil {
				log.WarnContext(ctx, "sync es view count error", "pid", pid, "err", err)
			}
		}
		synced++
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete view processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync portfolio view counts success",
		"dirty_count", len(portfolioIDs),
		"synced_count", synced)
}
