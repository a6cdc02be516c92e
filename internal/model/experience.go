package model

import (
	"time"
)

type Experience struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	PortfolioID  uint64     `gorm:"not null;index:idx_exp_portfolio" json:"portfolio_id"`
	Title        string     `gorm:"type:varchar(200);not null" json:"title"`
	Company      string     `gorm:"type:varchar(200);not null" json:"company"`
	Location     *string    `gorm:"type:varchar(100)" json:"location"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	IsCurrent    bool       `gorm:"not null;default:0" json:"is_current"`
	Description  string     `gorm:"type:varchar(2000);not null" json:"description"`
	Achievements []string   `gorm:"serializer:json" json:"achievements"`
	Technologies []string   `gorm:"serializer:json" json:"technologies"`
}

func (Experience) TableName() string {
	return "portfolio_experiences"
}
