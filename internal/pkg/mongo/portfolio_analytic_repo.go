package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PortfolioAnalyticRepo interface {
	AddView(ctx context.Context, view *PortfolioAnalytic) error
	CountViews(ctx context.Context, portfolioID uint64, since time.Time) (int64, error)
	CountViewsByPortfolios(ctx context.Context, portfolioIDs []uint64) (map[uint64]int64, error)
	CountViewerIdentities(ctx context.Context, portfolioID uint64, since time.Time) (int64, error)
	FindViews(ctx context.Context, portfolioID uint64, since time.Time) ([]*PortfolioAnalytic, error)
	FindViewsByPortfolios(ctx context.Context, portfolioIDs []uint64, since time.Time) ([]*PortfolioAnalytic, error)
	CountViewerIdentitiesByPortfolios(ctx context.Context, portfolioIDs []uint64, since time.Time) (int64, error)
	DeleteByPortfolio(ctx context.Context, portfolioID uint64) error
}

type portfolioAnalyticRepoImpl struct {
	col        *mongo.Collection
	dedupDaily bool
}

func NewPortfolioAnalyticRepo(db *mongo.Database, dedupDaily bool) PortfolioAnalyticRepo {
	return &portfolioAnalyticRepoImpl{
		col:        db.Collection(analyticCollection),
		dedupDaily: dedupDaily,
	}
}

// AddView 追加一条访问事件
// 开启按天去重时，同一访客当天的重复访问命中唯一索引，静默忽略
func (s *portfolioAnalyticRepoImpl) AddView(ctx context.Context, view *PortfolioAnalytic) error {
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}
	view.ViewDate = view.ViewedAt.Format(ViewDateLayout)

	_, err := s.col.InsertOne(ctx, view)
	if err != nil && s.dedupDaily && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// CountViews 统计访问事件数，since 为零值时统计全部
func (s *portfolioAnalyticRepoImpl) CountViews(ctx context.Context, portfolioID uint64, since time.Time) (int64, error) {
	return s.col.CountDocuments(ctx, viewFilter(portfolioID, since))
}

// CountViewsByPortfolios 批量统计各作品集的历史总访问量
func (s *portfolioAnalyticRepoImpl) CountViewsByPortfolios(ctx context.Context, portfolioIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(portfolioIDs))
	for _, id := range portfolioIDs {
		count, err := s.col.CountDocuments(ctx, bson.M{"portfolio_id": id})
		if err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, nil
}

// CountViewerIdentities 统计不同访客身份数（按 viewer_hash 去重）
func (s *portfolioAnalyticRepoImpl) CountViewerIdentities(ctx context.Context, portfolioID uint64, since time.Time) (int64, error) {
	values, err := s.col.Distinct(ctx, "viewer_hash", viewFilter(portfolioID, since))
	if err != nil {
		return 0, err
	}
	return int64(len(values)), nil
}

// FindViews 按时间升序返回访问事件，供上层按区间聚合
func (s *portfolioAnalyticRepoImpl) FindViews(ctx context.Context, portfolioID uint64, since time.Time) ([]*PortfolioAnalytic, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "viewed_at", Value: 1}})
	cursor, err := s.col.Find(ctx, viewFilter(portfolioID, since), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var views []*PortfolioAnalytic
	if err = cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// FindViewsByPortfolios 跨作品集取访问事件，供账号级总览聚合
func (s *portfolioAnalyticRepoImpl) FindViewsByPortfolios(ctx context.Context, portfolioIDs []uint64, since time.Time) ([]*PortfolioAnalytic, error) {
	if len(portfolioIDs) == 0 {
		return []*PortfolioAnalytic{}, nil
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "viewed_at", Value: 1}})
	cursor, err := s.col.Find(ctx, viewsFilter(portfolioIDs, since), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var views []*PortfolioAnalytic
	if err = cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *portfolioAnalyticRepoImpl) CountViewerIdentitiesByPortfolios(ctx context.Context, portfolioIDs []uint64, since time.Time) (int64, error) {
	if len(portfolioIDs) == 0 {
		return 0, nil
	}
	values, err := s.col.Distinct(ctx, "viewer_hash", viewsFilter(portfolioIDs, since))
	if err != nil {
		return 0, err
	}
	return int64(len(values)), nil
}

func (s *portfolioAnalyticRepoImpl) DeleteByPortfolio(ctx context.Context, portfolioID uint64) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"portfolio_id": portfolioID})
	return err
}

func viewFilter(portfolioID uint64, since time.Time) bson.M {
	filter := bson.M{"portfolio_id": portfolioID}
	if !since.IsZero() {
		filter["viewed_at"] = bson.M{"$gte": since}
	}
	return filter
}

func viewsFilter(portfolioIDs []uint64, since time.Time) bson.M {
	filter := bson.M{"portfolio_id": bson.M{"$in": portfolioIDs}}
	if !since.IsZero() {
		filter["viewed_at"] = bson.M{"$gte": since}
	}
	return filter
}
