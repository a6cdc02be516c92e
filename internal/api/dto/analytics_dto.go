package dto

// AnalyticsQuery 分析查询参数
type AnalyticsQuery struct {
	Range    string `form:"range" validate:"omitempty,oneof=7d 30d 90d all"`
	Interval string `form:"interval" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

// IntervalBucketDTO 一个时间桶内的访问量
type IntervalBucketDTO struct {
	Bucket string `json:"bucket"` // daily: 2006-01-02 / weekly: 起始日 / monthly: 2006-01
	Views  int64  `json:"views"`
}

// ReferrerCountDTO 来源站点计数
type ReferrerCountDTO struct {
	Referrer string `json:"referrer"`
	Views    int64  `json:"views"`
}

// AnalyticsSummaryDTO 单个作品集的访问分析
type AnalyticsSummaryDTO struct {
	PortfolioID      uint64              `json:"portfolio_id"`
	TotalViews       int64               `json:"total_views"`
	ViewerIdentities int64               `json:"viewer_identities"`
	ViewsByInterval  []IntervalBucketDTO `json:"views_by_interval"`
	TopReferrers     []ReferrerCountDTO  `json:"top_referrers"`
}

// PortfolioViewsDTO 总览里单个作品集的累计访问量
type PortfolioViewsDTO struct {
	PortfolioID uint64 `json:"portfolio_id"`
	Views       int64  `json:"views"`
}

// AnalyticsOverviewDTO 账号名下全部作品集的访问总览
type AnalyticsOverviewDTO struct {
	TotalViews       int64               `json:"total_views"`
	ViewerIdentities int64               `json:"viewer_identities"`
	ViewsByInterval  []IntervalBucketDTO `json:"views_by_interval"`
	TopReferrers     []ReferrerCountDTO  `json:"top_referrers"`
	Portfolios       []PortfolioViewsDTO `json:"portfolios"`
}

// TrackViewDTO 公开页上报一次访问
type TrackViewDTO struct {
	Referrer string `json:"referrer" validate:"omitempty,max=512"`
}
