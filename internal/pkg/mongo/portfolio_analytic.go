package mongo

import (
	"time"
)

const analyticCollection = "portfolio_analytics"

// ViewDateLayout view_date 字段的日期格式，按天截断用于访客去重
const ViewDateLayout = "2006-01-02"

// PortfolioAnalytic 一次作品集访问事件，浏览量以该集合为准
type PortfolioAnalytic struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	PortfolioID uint64    `bson:"portfolio_id" json:"portfolioId"` // 关联 MySQL 的作品集 ID
	ViewerHash  string    `bson:"viewer_hash" json:"viewerHash"`   // IP+UA 摘要，用于区分访客身份
	IPAddress   string    `bson:"ip_address" json:"ipAddress"`
	UserAgent   string    `bson:"user_agent" json:"userAgent"`
	Referrer    string    `bson:"referrer,omitempty" json:"referrer"`
	ViewDate    string    `bson:"view_date" json:"viewDate"` // viewed_at 按天截断
	ViewedAt    time.Time `bson:"viewed_at" json:"viewedAt"`
}
