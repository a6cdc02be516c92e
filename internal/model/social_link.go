package model

type SocialLink struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	PortfolioID uint64  `gorm:"not null;index:idx_social_portfolio" json:"portfolio_id"`
	Platform    string  `gorm:"type:varchar(50);not null" json:"platform"`
	URL         string  `gorm:"type:varchar(512);not null" json:"url"`
	Username    *string `gorm:"type:varchar(100)" json:"username"`
}

func (SocialLink) TableName() string {
	return "portfolio_social_links"
}
